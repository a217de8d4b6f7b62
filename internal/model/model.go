package model

import "fmt"

// Language selects the provider used to generate image prompts.
type Language string

const (
	LanguageGrok   Language = "grok"
	LanguageGemini Language = "gemini"
)

func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageGrok, LanguageGemini:
		return Language(s), nil
	}
	return "", fmt.Errorf("unsupported language model %q (want grok or gemini)", s)
}

// Image selects the provider used to render images.
type Image string

const (
	ImageGrok   Image = "grok"
	ImageGemini Image = "gemini"
)

func ParseImage(s string) (Image, error) {
	switch Image(s) {
	case ImageGrok, ImageGemini:
		return Image(s), nil
	}
	return "", fmt.Errorf("unsupported image model %q (want grok or gemini)", s)
}
