package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/heathj/xmlhighlight/highlight"
	"github.com/heathj/xmlhighlight/parser"
)

func newCmdEvents(v *viper.Viper, cfgFile *string, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "events <file>",
		Short: "Print the structural events the highlighter is driven by",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, *cfgFile)
			if err != nil {
				return err
			}
			content, err := highlight.ReadFile(args[0], cfg.Charset)
			if err != nil {
				return err
			}

			tokens, tokErr := parser.Tokenize(content)
			for _, tok := range tokens {
				fmt.Fprintf(stdout, "%-7s  %-7d  %-9s  %s\n", tok.Pos, tok.Pos.Offset, tok.TokenType, describe(tok))
			}
			return tokErr
		},
	}
}

func describe(tok parser.Token) string {
	switch tok.TokenType {
	case parser.StartTagToken, parser.EndTagToken:
		if tok.Prefix != "" {
			return tok.Prefix + ":" + tok.TagName
		}
		return tok.TagName
	case parser.ProcInstToken:
		return tok.TagName + " " + strconv.Quote(tok.Data)
	default:
		return strconv.Quote(tok.Data)
	}
}
