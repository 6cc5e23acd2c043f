package services

import "errors"

// FeedErrorKind classifies where the gold-price pipeline failed.
type FeedErrorKind int

const (
	KindNetwork FeedErrorKind = iota
	KindHTTPStatus
	KindDecode
	KindMalformedShape
	KindRemote
	KindUnknown
)

func (k FeedErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	case KindMalformedShape:
		return "malformed_shape"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FeedError is a failure of one fetch/format invocation. Detail carries the
// status code or upstream message; Err the wrapped cause, when there is one.
type FeedError struct {
	Kind   FeedErrorKind
	Detail string
	Err    error
}

func (e *FeedError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Detail + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Detail
}

func (e *FeedError) Unwrap() error { return e.Err }

// UserMessage maps a pipeline failure to the reply delivered back to the chat.
// Every failure ends here; nothing propagates past the handler.
func UserMessage(err error) string {
	var fe *FeedError
	if !errors.As(err, &fe) {
		return "💥 系统开小差了，请稍后再试~"
	}
	switch fe.Kind {
	case KindRemote:
		return "❌ 数据获取失败：" + fe.Detail
	case KindDecode, KindMalformedShape:
		return "❗ 数据格式异常，请稍后再试"
	default:
		return "⚠️ 连接黄金数据源失败，请稍后重试"
	}
}
