// Package cities canonicalizes the free-form Saudi city names entered by
// owners and influencers so coverage matching compares like with like.
package cities

import "strings"

// canonicalVariants maps each canonical city name to the spellings seen in
// the wild: English transliterations, Arabic script, and the usual
// definite-article and hamza variations.
var canonicalVariants = map[string][]string{
	"Riyadh":          {"riyadh", "riyad", "ar-riyadh", "الرياض", "رياض"},
	"Jeddah":          {"jeddah", "jedda", "jidda", "jiddah", "جدة", "جده"},
	"Makkah":          {"makkah", "mecca", "makkah al-mukarramah", "مكة", "مكة المكرمة"},
	"Madinah":         {"madinah", "medina", "al-madinah", "المدينة", "المدينة المنورة"},
	"Dammam":          {"dammam", "ad-dammam", "الدمام", "دمام"},
	"Khobar":          {"khobar", "al-khobar", "al khobar", "الخبر", "خبر"},
	"Dhahran":         {"dhahran", "az-zahran", "الظهران"},
	"Taif":            {"taif", "at-taif", "al-taif", "الطائف", "طائف"},
	"Buraidah":        {"buraidah", "buraydah", "بريدة", "بريده"},
	"Tabuk":           {"tabuk", "tabouk", "تبوك"},
	"Abha":            {"abha", "أبها", "ابها"},
	"Khamis Mushait":  {"khamis mushait", "khamis mushayt", "خميس مشيط"},
	"Hail":            {"hail", "hayel", "ha'il", "حائل", "حايل"},
	"Najran":          {"najran", "نجران"},
	"Jazan":           {"jazan", "jizan", "gizan", "جازان", "جيزان"},
	"Al Ahsa":         {"al ahsa", "al-ahsa", "hofuf", "al hofuf", "الأحساء", "الاحساء", "الهفوف"},
	"Jubail":          {"jubail", "al jubail", "الجبيل", "جبيل"},
	"Yanbu":           {"yanbu", "yenbo", "ينبع"},
	"Al Kharj":        {"al kharj", "al-kharj", "kharj", "الخرج"},
	"Qatif":           {"qatif", "al qatif", "القطيف", "قطيف"},
	"Hafar Al-Batin":  {"hafar al-batin", "hafr al-batin", "حفر الباطن"},
	"Arar":            {"arar", "عرعر"},
	"Sakaka":          {"sakaka", "سكاكا", "سكاكة"},
	"Al Baha":         {"al baha", "al-baha", "baha", "الباحة"},
	"Unaizah":         {"unaizah", "onaizah", "عنيزة"},
}

var variantIndex map[string]string

func init() {
	variantIndex = make(map[string]string, len(canonicalVariants)*4)
	for canonical, variants := range canonicalVariants {
		variantIndex[strings.ToLower(canonical)] = canonical
		for _, v := range variants {
			variantIndex[v] = canonical
		}
	}
}

// Normalize returns the canonical name for a known city variant. Unknown
// cities pass through trimmed but otherwise verbatim: matching fails open
// so a city missing from the table still matches itself exactly.
func Normalize(city string) string {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return trimmed
	}
	if canonical, ok := variantIndex[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Match reports whether two city strings refer to the same city after
// normalization. Exact-after-normalization only, no fuzzy matching.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.EqualFold(na, nb)
}

// MatchAny reports whether any city in the coverage list matches the
// target city.
func MatchAny(coverage []string, target string) bool {
	for _, c := range coverage {
		if Match(c, target) {
			return true
		}
	}
	return false
}
