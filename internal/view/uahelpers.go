// internal/view/uahelpers.go
//
// User-Agent template helpers over *requestinfo.Info.  Every helper is
// nil-safe so templates rendered outside the Enrich middleware still work.
package view

import (
	"html/template"

	"github.com/yanizio/console/internal/requestinfo"
)

func uaFuncMap() template.FuncMap {
	return template.FuncMap{
		"browser": func(i *requestinfo.Info) string {
			if i == nil {
				return ""
			}
			return i.UA.Browser
		},
		"browserVersion": func(i *requestinfo.Info) string {
			if i == nil {
				return ""
			}
			return i.UA.Version
		},
		"os": func(i *requestinfo.Info) string {
			if i == nil {
				return ""
			}
			return i.UA.OS
		},
		"device": func(i *requestinfo.Info) string {
			if i == nil {
				return ""
			}
			return i.UA.Device
		},
		"isBot": func(i *requestinfo.Info) bool { return i != nil && i.UA.IsBot },
	}
}
