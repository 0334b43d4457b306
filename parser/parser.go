package parser

// Tokenize reads every event of content. On failure it returns the events
// read up to that point together with the error.
func Tokenize(content string) ([]Token, error) {
	var (
		tokenizer = NewXMLTokenizer(content)
		tokens    = []Token{}
	)
	defer tokenizer.Close()

	for tokenizer.Next() {
		tokens = append(tokens, tokenizer.Token())
	}
	return tokens, tokenizer.Err()
}
