package domain

import "errors"

// Fixed user-facing messages.
const (
	MsgNoResults     = "검색 결과가 없습니다."
	MsgNoIssues      = "등록된 이슈가 없습니다."
	MsgNoDetail      = "상세 정보를 불러올 수 없습니다. 가이드 페이지로 돌아가 다시 시도해주세요."
	MsgCorruptDetail = "상세 정보를 표시하는 중 오류가 발생했습니다."
	MsgLoadFailed    = "데이터를 불러오는 데 실패했습니다."
)

// UserMessage maps err to the fixed message shown in place of content.
// Load failures use the dataset's own message when one is set.
// It returns "" for errors that have no fixed message.
func UserMessage(err error, d Dataset) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLoad):
		if d.LoadErrorMessage != "" {
			return d.LoadErrorMessage
		}
		return MsgLoadFailed
	case errors.Is(err, ErrNoDetail):
		return MsgNoDetail
	case errors.Is(err, ErrCorruptDetail):
		return MsgCorruptDetail
	default:
		return ""
	}
}
