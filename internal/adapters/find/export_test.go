package find

import "go.trai.ch/pollwatch/internal/core/domain"

var (
	ListArgs   = listArgs
	SecondsAgo = secondsAgo
)

func Parse(out string) domain.PathSet {
	return parse([]byte(out))
}
