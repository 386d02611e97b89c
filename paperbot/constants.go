package paperbot

import "github.com/paperbot/paperbot/paperbot/query"

const (
	// MaxInputBytes caps the input length checked before tokenization.
	MaxInputBytes = 4096

	DefaultResultCount         = query.DefaultResultCount
	ResultCountLimit           = query.ResultCountLimit
	DefaultTimezoneOffsetHours = query.DefaultTimezoneOffsetHours
)
