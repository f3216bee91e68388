package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "records-create",
		Method:        http.MethodPost,
		Path:          "/api/records",
		Summary:       "Store an encrypted secret",
		Description:   "Stores ciphertext produced on the sender's device and returns the record with its ID and expiration time.",
		Tags:          []string{"records"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-find",
		Method:      http.MethodGet,
		Path:        "/api/records/{id}",
		Summary:     "Read a secret once",
		Description: "Returns the record and deletes it. Unknown, expired and already read records are reported as not found.",
		Tags:        []string{"records"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}
