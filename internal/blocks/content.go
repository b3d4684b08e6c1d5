package blocks

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/platform/textutil"
)

// TextBlock is plain or lightly marked-up paragraph text.
type TextBlock struct {
	Base
	Content string
}

func (b TextBlock) ContributesToComposite() bool { return true }

func (b TextBlock) CompositeContribution() (Contribution, bool) {
	return Contribution{Type: ContributionText, Content: textutil.PlainText(b.Content)}, true
}

var markdown = goldmark.New()

// MarkdownBlock is a markdown body, rendered before it contributes text.
type MarkdownBlock struct {
	Base
	Source string
}

// HTML renders the markdown source.
func (b MarkdownBlock) HTML() (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(b.Source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (b MarkdownBlock) ContributesToComposite() bool { return true }

func (b MarkdownBlock) CompositeContribution() (Contribution, bool) {
	rendered, err := b.HTML()
	if err != nil {
		rendered = b.Source
	}
	return Contribution{Type: ContributionText, Content: textutil.PlainText(rendered)}, true
}

// RichTextBlock is editor HTML. Its text and inline images both contribute.
type RichTextBlock struct {
	Base
	HTML string
}

func (b RichTextBlock) ContributesToComposite() bool { return true }

func (b RichTextBlock) CompositeContribution() (Contribution, bool) {
	return Contribution{Type: ContributionText, Content: textutil.PlainText(b.HTML)}, true
}

// CompositeContributions returns the text followed by each inline image in document order.
func (b RichTextBlock) CompositeContributions() []Contribution {
	text, _ := b.CompositeContribution()
	out := []Contribution{text}
	for _, src := range inlineImages(b.HTML) {
		out = append(out, Contribution{Type: ContributionImage, URL: src})
	}
	return out
}

func inlineImages(fragment string) []string {
	var out []string
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed fragment; either way keep what was found.
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.DataAtom != atom.Img {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "src" && strings.TrimSpace(attr.Val) != "" {
					out = append(out, strings.TrimSpace(attr.Val))
				}
			}
		}
	}
}

// ImageBlock is a single stored image.
type ImageBlock struct {
	Base
	Image *domain.ImageValue
	Alt   string
}

func (b ImageBlock) ContributesToComposite() bool { return true }

func (b ImageBlock) CompositeContribution() (Contribution, bool) {
	if b.Image.IsZero() {
		return Contribution{}, false
	}
	return Contribution{Type: ContributionImage, Image: b.Image}, true
}

// HeroBlock holds the page's hero image. It contributes nothing itself; the
// image feeds the Open Graph and Twitter fallback chains.
type HeroBlock struct {
	Base
	Image   *domain.ImageValue
	Heading string
}

// FindHeroImage returns the image of the first hero block. A first hero
// without an image yields nil; later hero blocks are not consulted.
func FindHeroImage(blocks []Block) *domain.ImageValue {
	for _, b := range blocks {
		switch v := b.(type) {
		case HeroBlock:
			return heroImage(v.Image)
		case *HeroBlock:
			if v == nil {
				return nil
			}
			return heroImage(v.Image)
		}
	}
	return nil
}

func heroImage(img *domain.ImageValue) *domain.ImageValue {
	if img.IsZero() {
		return nil
	}
	return img
}
