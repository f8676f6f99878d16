package rfc4175

type AttributeKey int

const (
	// HeaderFieldsKey maps to the HeaderFields of a sent packet in
	// interceptor.Attributes handed to packet loggers.
	HeaderFieldsKey AttributeKey = iota
)
