package converters

const (
	ErrMsgNilTargetType = "Target type cannot be nil."
)
