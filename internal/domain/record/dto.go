package record

// CreateRequest carries everything needed to store a new record. The ID and
// the creation time are assigned by the service.
type CreateRequest struct {
	Content  string             `json:"content" minLength:"1" doc:"Ciphertext produced on the sender's device"`
	ExpireIn ExpirationSettings `json:"expireIn" doc:"How long the record may live"`
	Type     RecType            `json:"type,omitempty" doc:"text or file, text when omitted"`
	MimeType *string            `json:"mimeType,omitempty" doc:"MIME type of the original file"`
}

func (r CreateRequest) recordType() RecType {
	if r.Type == "" {
		return RecTypeText
	}
	return r.Type
}
