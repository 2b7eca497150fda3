package style

import (
	"sync"

	"github.com/inkwellrender/inkwell/css"
)

// userAgentCSS mirrors the default rendering of common HTML elements.
// Only properties the pipeline models appear here.
const userAgentCSS = `
html, body, div, p, blockquote, pre, address, article, aside, footer,
header, main, nav, section, figure, figcaption, h1, h2, h3, h4, h5, h6,
ul, ol, li, dl, dt, dd, hr, form, fieldset, table { display: block }

head, meta, title, link, style, script, noscript, template { display: none }

body { margin: 8px }
p, blockquote, ul, ol, dl { margin: 16px 0 }

h1 { font-size: 32px; font-weight: bold; margin: 21px 0 }
h2 { font-size: 24px; font-weight: bold; margin: 20px 0 }
h3 { font-size: 19px; font-weight: bold; margin: 18px 0 }
h4 { font-size: 16px; font-weight: bold; margin: 21px 0 }
h5 { font-size: 13px; font-weight: bold; margin: 22px 0 }
h6 { font-size: 11px; font-weight: bold; margin: 25px 0 }

b, strong { font-weight: bold }
i, em { font-style: italic }

pre { white-space: pre; font-family: monospace; margin: 16px 0 }
code, kbd, samp, tt { font-family: monospace }

ul, ol { padding-left: 40px }
a { color: #00e }
center { display: block; text-align: center }
`

var (
	uaOnce  sync.Once
	uaSheet *css.Stylesheet
)

// UserAgentSheet returns the built-in default stylesheet. The sheet is
// parsed once and shared; callers must not mutate it.
func UserAgentSheet() *css.Stylesheet {
	uaOnce.Do(func() {
		uaSheet = css.ParseStylesheet(userAgentCSS, css.UserAgent, nil)
	})
	return uaSheet
}
