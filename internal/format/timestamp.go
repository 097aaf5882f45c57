package format

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// TimestampLayout renders a point in time with localized day and month names.
const TimestampLayout = "Monday, 2 January 2006 15:04 MST"

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en-US": monday.LocaleEnUS,
	"en-GB": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr-CA": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt-BR": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"ru":    monday.LocaleRuRU,
	"pl":    monday.LocalePlPL,
	"ja":    monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"ko":    monday.LocaleKoKR,
}

// mondayLocale picks the closest date locale for tag, falling back from
// region to base language and then to US English.
func mondayLocale(tag language.Tag) monday.Locale {
	if loc, ok := mondayLocales[tag.String()]; ok {
		return loc
	}
	base, _ := tag.Base()
	if loc, ok := mondayLocales[base.String()]; ok {
		return loc
	}
	return monday.LocaleEnUS
}

// Timestamp renders t in the formatter's locale, in UTC.
func (f *Formatter) Timestamp(t time.Time) string {
	return monday.Format(t.UTC(), TimestampLayout, mondayLocale(f.tag))
}
