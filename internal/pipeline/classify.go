package pipeline

import (
	"net/url"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// socialDomains are platforms whose links count as a social presence,
// not a genuine website. A listing whose "website" points here is still
// a valid lead.
var socialDomains = map[string]struct{}{
	"facebook.com":   {},
	"m.facebook.com": {},
	"l.facebook.com": {},
	"instagram.com":  {},
	"l.instagram.com": {},
	"linktr.ee":      {},
	"x.com":          {},
	"twitter.com":    {},
	"tiktok.com":     {},
	"wa.me":          {},
	"whatsapp.com":   {},
}

// ClassifySite decides whether a listing's website URL is a genuine
// website, a social profile, or nothing. Unparseable URLs and URLs
// without a host classify as none: failing open keeps the candidate in
// the lead list rather than silently dropping it.
func ClassifySite(website string) model.SiteType {
	website = strings.TrimSpace(website)
	if website == "" {
		return model.SiteTypeNone
	}

	u, err := url.Parse(website)
	if err != nil {
		return model.SiteTypeNone
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return model.SiteTypeNone
	}

	for d := range socialDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return model.SiteTypeSocial
		}
	}
	return model.SiteTypeWebsite
}
