package chat

// SystemInstruction is the fixed directive folded into the first user
// turn of every conversation. The upstream call path depends on this
// exact text, so it must not be reformatted.
const SystemInstruction = "Eres un asistente virtual experto en tecnologías de desarrollo web modernas, especialmente React, Next.js y Django REST Framework. Tu objetivo es proporcionar respuestas precisas y concisas sobre estos temas. Si la pregunta no está directamente relacionada con desarrollo web o tecnologías web (ej. preguntas sobre historia, medicina, física), debes responder amablemente que solo puedes ayudar con temas de desarrollo web. Siempre mantén un tono profesional y servicial."

// BuildTranscript reconstructs the upstream transcript from the stored
// history followed by the new prompt. On the first turn of a
// conversation the system instruction is prepended to the prompt inside
// a single user entry; later turns replay the history verbatim.
func BuildTranscript(history []Message, prompt string) []TranscriptEntry {
	if len(history) == 0 {
		return []TranscriptEntry{
			{
				Role:  string(SenderTypeUser),
				Parts: []TranscriptPart{{Text: SystemInstruction + "\n\n" + prompt}},
			},
		}
	}

	transcript := make([]TranscriptEntry, 0, len(history)+1)
	for _, msg := range history {
		transcript = append(transcript, TranscriptEntry{
			Role:  string(msg.SenderType),
			Parts: []TranscriptPart{{Text: msg.TextContent}},
		})
	}

	transcript = append(transcript, TranscriptEntry{
		Role:  string(SenderTypeUser),
		Parts: []TranscriptPart{{Text: prompt}},
	})

	return transcript
}
