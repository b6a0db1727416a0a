package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/ayumu-h/curio"
)

// Ensure Previewer implements curio.PreviewService at compile time.
var _ curio.PreviewService = (*Previewer)(nil)

// Previewer produces a reduced link preview from the same fetch and tag
// scan primitives as the full pipeline, skipping structured data, feeds
// and text scanning.
type Previewer struct {
	Pages  curio.Fetcher
	Config Config
}

// NewPreviewer creates a Previewer.
func NewPreviewer(pages curio.Fetcher, cfg Config) *Previewer {
	return &Previewer{Pages: pages, Config: cfg}
}

// descriptionAuthorPattern pulls an author out of free-text description
// metadata ("作者：田中" / "Author: Jane Doe").
var descriptionAuthorPattern = regexp.MustCompile(`(?i)(?:作者|著者|author)\s*[:：]\s*([^,，;；|｜\n]{1,60})`)

// Preview implements curio.PreviewService.
func (p *Previewer) Preview(ctx context.Context, pageURL string) (*curio.Preview, error) {
	if err := curio.ValidateTargetURL(pageURL); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.Config.PreviewTimeout)
	defer cancel()
	page, err := p.Pages.Fetch(fetchCtx, pageURL)
	if err != nil {
		return nil, err
	}

	scan := ScanPage(page.Body, pageURL, 1)
	preview := &curio.Preview{}

	preview.Image = metaValue(scan.Meta, "og:image", "twitter:image")
	if preview.Image == "" {
		if href := linkHref(scan.Links, "image_src"); href != "" {
			preview.Image = href
		} else if len(scan.Images) > 0 {
			preview.Image = scan.Images[0]
		}
	}
	if preview.Image != "" {
		if base, err := url.Parse(pageURL); err == nil {
			preview.Image = resolveURL(base, preview.Image)
		}
	}

	preview.Title = metaValue(scan.Meta, "og:title", "twitter:title")
	if preview.Title == "" {
		preview.Title = scan.Title
	}

	preview.SiteName = metaValue(scan.Meta, "og:site_name", "application-name")
	if preview.SiteName == "" {
		if u, err := url.Parse(pageURL); err == nil {
			preview.SiteName = u.Hostname()
		}
	}

	if desc := metaValue(scan.Meta, "og:description", "description", "twitter:description"); desc != "" {
		if m := descriptionAuthorPattern.FindStringSubmatch(desc); m != nil {
			preview.Author = strings.TrimSpace(m[1])
		}
	}

	return preview, nil
}

func linkHref(links []LinkTag, rel string) string {
	for _, link := range links {
		if link.Rel == rel {
			return link.Href
		}
	}
	return ""
}
