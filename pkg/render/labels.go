// Package render holds the user-facing labels of the explorer and a plain
// text renderer of a derived view.
package render

// Labels is the user-facing text of every surface.
type Labels struct {
	Title             string
	SearchPlaceholder string
	StatuteList       string
	Details           string
	Similar           string
	AttemptToggle     string
	AttemptSuffix     string
	Penalties         string
	MissingAttempt    string
	SelectPrompt      string
	HarshestPrefix    string
	NoResults         string
	NoSimilar         string
	HiddenNotice      string
	SortAscending     string
	SortDescending    string
}

// Japanese returns the labels of the sample catalog's locale.
func Japanese() Labels {
	return Labels{
		Title:             "日本の法律と刑罰",
		SearchPlaceholder: "法律を検索...",
		StatuteList:       "法律一覧",
		Details:           "詳細",
		Similar:           "類似の法律",
		AttemptToggle:     "未遂罪を表示",
		AttemptSuffix:     "（未遂）",
		Penalties:         "刑罰",
		MissingAttempt:    "この法律には未遂罪の規定がありません。",
		SelectPrompt:      "法律を選択してください",
		HarshestPrefix:    "最高刑",
		NoResults:         "該当する法律がありません",
		NoSimilar:         "類似の法律はありません",
		HiddenNotice:      "選択中の法律は検索結果に含まれていません",
		SortAscending:     "刑の軽い順",
		SortDescending:    "刑の重い順",
	}
}

// Default is the label set used when none is configured.
var Default = Japanese()
