// Package pages builds the token values for every generated page: the
// top-level index, one page per spread and one page per category.
package pages

import "git.home.luguber.info/inful/tarotbuild/internal/templates"

// Token names shared by templates.
const (
	TokenJSFile    = "JS_FILE"
	TokenCSSFile   = "CSS_FILE"
	TokenMetaTitle = "META_TITLE"
	TokenMetaDesc  = "META_DESCRIPTION"
	TokenMetaKeys  = "META_KEYWORDS"
	TokenCanonical = "CANONICAL_URL"

	TokenSpreadID           = "SPREAD_ID"
	TokenSpreadName         = "SPREAD_NAME"
	TokenSpreadSlug         = "SPREAD_SLUG"
	TokenCardCount          = "CARD_COUNT"
	TokenSpreadDescription  = "SPREAD_DESCRIPTION"
	TokenSpreadIntroduction = "SPREAD_INTRODUCTION"
	TokenSpreadHowToRead    = "SPREAD_HOW_TO_READ"
	TokenSpreadWhenToUse    = "SPREAD_WHEN_TO_USE"
	TokenKeywordBadges      = "KEYWORD_BADGES"
	TokenPositionList       = "POSITION_LIST"

	TokenCategoryName        = "CATEGORY_NAME"
	TokenCategorySlug        = "CATEGORY_SLUG"
	TokenCategoryIcon        = "CATEGORY_ICON"
	TokenCategoryDescription = "CATEGORY_DESCRIPTION"
	TokenSpreadCount         = "SPREAD_COUNT"
	TokenSpreadCountLabel    = "SPREAD_COUNT_LABEL"
	TokenSpreadCards         = "SPREAD_CARDS"
)

// IndexKind is the top-level application page; only asset paths are substituted.
var IndexKind = templates.Kind{
	Name:     "index",
	Supplies: []string{TokenJSFile, TokenCSSFile},
	Required: []string{TokenJSFile, TokenCSSFile},
}

// SpreadKind is the per-spread page.
var SpreadKind = templates.Kind{
	Name: "spread",
	Supplies: []string{
		TokenJSFile, TokenCSSFile,
		TokenMetaTitle, TokenMetaDesc, TokenMetaKeys, TokenCanonical,
		TokenSpreadID, TokenSpreadName, TokenSpreadSlug, TokenCardCount,
		TokenCategoryName, TokenCategorySlug, TokenCategoryIcon,
		TokenSpreadDescription, TokenSpreadIntroduction, TokenSpreadHowToRead, TokenSpreadWhenToUse,
		TokenKeywordBadges, TokenPositionList,
	},
	Required: []string{TokenJSFile, TokenCSSFile, TokenMetaTitle, TokenSpreadName},
}

// CategoryKind is the per-category page.
var CategoryKind = templates.Kind{
	Name: "category",
	Supplies: []string{
		TokenJSFile, TokenCSSFile,
		TokenMetaTitle, TokenMetaDesc, TokenMetaKeys, TokenCanonical,
		TokenCategoryName, TokenCategorySlug, TokenCategoryIcon, TokenCategoryDescription,
		TokenSpreadCount, TokenSpreadCountLabel, TokenSpreadCards,
	},
	Required: []string{TokenJSFile, TokenCSSFile, TokenMetaTitle, TokenCategoryName},
}
