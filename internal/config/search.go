package config

// SearchConfig configures the local index and the hosted search option.
// Neither is built here; the values are passed through.
type SearchConfig struct {
	Local   *LocalSearchConfig `yaml:"local,omitempty" json:"local,omitempty"`
	Algolia *AlgoliaConfig     `yaml:"algolia,omitempty" json:"algolia,omitempty"`
}

// LocalSearchConfig configures the offline search index.
type LocalSearchConfig struct {
	IndexDocs bool `yaml:"index_docs" json:"indexDocs"`
	// IndexDocSidebarParentCategories is how many parent category titles are
	// indexed with a page. 0 disables it.
	IndexDocSidebarParentCategories int        `yaml:"index_doc_sidebar_parent_categories" json:"indexDocSidebarParentCategories"`
	IndexPages                      bool       `yaml:"index_pages" json:"indexPages"`
	Language                        string     `yaml:"language" json:"language"`
	Lunr                            LunrConfig `yaml:"lunr" json:"lunr"`
}

// LunrConfig tunes tokenization and ranking.
type LunrConfig struct {
	// TokenizerSeparator is a regular expression.
	TokenizerSeparator    string   `yaml:"tokenizer_separator" json:"tokenizerSeparator"`
	B                     *float64 `yaml:"b,omitempty" json:"b,omitempty"`
	K1                    *float64 `yaml:"k1,omitempty" json:"k1,omitempty"`
	TitleBoost            *float64 `yaml:"title_boost,omitempty" json:"titleBoost,omitempty"`
	ContentBoost          *float64 `yaml:"content_boost,omitempty" json:"contentBoost,omitempty"`
	ParentCategoriesBoost *float64 `yaml:"parent_categories_boost,omitempty" json:"parentCategoriesBoost,omitempty"`
}

// AlgoliaConfig configures hosted search.
type AlgoliaConfig struct {
	AppID                       string               `yaml:"app_id" json:"appId"`
	APIKey                      string               `yaml:"api_key" json:"apiKey"`
	IndexName                   string               `yaml:"index_name" json:"indexName"`
	ExternalURLRegex            string               `yaml:"external_url_regex,omitempty" json:"externalUrlRegex,omitempty"`
	ReplaceSearchResultPathname *PathnameReplacement `yaml:"replace_search_result_pathname,omitempty" json:"replaceSearchResultPathname,omitempty"`
	SearchParameters            map[string]any       `yaml:"search_parameters,omitempty" json:"searchParameters,omitempty"`
	SearchPagePath              string               `yaml:"search_page_path,omitempty" json:"searchPagePath,omitempty"`
	Insights                    bool                 `yaml:"insights" json:"insights"`
}

// PathnameReplacement rewrites part of result URLs.
type PathnameReplacement struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}
