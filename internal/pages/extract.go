package pages

import (
	"strings"

	"github.com/druskus20/bageri/internal/logging"
)

// ExtractBody pulls the body content out of a user-authored HTML file and
// re-wraps it in a plain <body> element. Source files are treated as loose
// fragments, not strict documents:
//
//   - a <head>...</head> block is stripped entirely, with a warning, since
//     the generated head replaces it
//   - with <body> and </body>, the inner content is kept (trimmed)
//   - with <body> but no closing tag, everything after the opening tag is
//     the body
//   - without a <body> tag, the whole (de-headed) document is the body
func ExtractBody(doc string, logger *logging.Logger) string {
	log := logger.WithComponent("pages")
	html := strings.TrimSpace(doc)

	if headStart := strings.Index(html, "<head"); headStart >= 0 {
		if headEnd := strings.Index(html, "</head>"); headEnd >= 0 {
			log.Warn("source file contains a <head> section, removing it; the generated head replaces it")
			html = html[:headStart] + html[headEnd+len("</head>"):]
		}
	}
	return wrapBody(html, log)
}

func wrapBody(html string, log *logging.Logger) string {
	if bodyStart := strings.Index(html, "<body"); bodyStart >= 0 {
		if gt := strings.Index(html[bodyStart:], ">"); gt >= 0 {
			contentStart := bodyStart + gt + 1
			if bodyEnd := strings.LastIndex(html, "</body>"); bodyEnd >= contentStart {
				return "<body>" + strings.TrimSpace(html[contentStart:bodyEnd]) + "</body>"
			}
			log.Warn("no closing </body> tag found, treating rest of file as body content")
			return "<body>" + strings.TrimSpace(html[contentStart:]) + "</body>"
		}
	}
	log.Warn("no <body> tag found, treating entire file as body content")
	return "<body>" + strings.TrimSpace(html) + "</body>"
}
