package rss

import (
	"html"
	"log"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/geomanifold/manifold/pkg/converter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

const maxSummaryLength = 4096

// buildSummary renders the entry body as markdown. Description wins over
// full content; entries whose description merely repeats the title carry no
// summary at all.
func buildSummary(item *gofeed.Item) string {
	source := item.Description
	if source == "" {
		source = item.Content
	}

	summary := htmlToMarkdown(source, converter.GetSummaryConverterRules())
	if strings.EqualFold(strings.TrimSpace(item.Title), strings.TrimSpace(summary)) {
		return ""
	}

	summary = html.UnescapeString(summary)
	if len(summary) > maxSummaryLength {
		summary = summary[0:maxSummaryLength-1] + "…"
	}

	return strings.ToValidUTF8(strings.TrimSpace(summary), "")
}

func htmlToMarkdown(s string, converterRules []md.Rule) string {
	mdConverter := md.NewConverter("", true, nil)
	mdConverter.AddRules(converterRules...)

	convertedS, err := mdConverter.ConvertString(s)
	if err != nil {
		log.Printf("[WARN] failure to convert to markdown (defaulting to plain text): %v", err)
		p := bluemonday.StripTagsPolicy()
		convertedS = p.Sanitize(s)
	}

	return convertedS
}
