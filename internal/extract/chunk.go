package extract

// chunkText segments text into chunks that give relationship detection a
// locality signal. Paragraphs (blank-line boundaries) are the preferred
// unit; when the input is a single block, sentences are grouped into
// fixed-size windows instead.
func (e *Extractor) chunkText(text string) []string {
	paras := splitParagraphs(text)
	if len(paras) >= 2 {
		return paras
	}

	sentences := SplitSentences(text)
	window := e.cfg.SentenceWindow
	if window < 1 {
		window = 1
	}
	if len(sentences) <= window {
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(sentences); i += window {
		end := i + window
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, joinSentences(sentences[i:end]))
	}
	return chunks
}

func joinSentences(sentences []string) string {
	out := ""
	for i, s := range sentences {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
