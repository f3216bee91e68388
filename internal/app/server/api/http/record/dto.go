package record

import (
	"otsshare/internal/domain/record"
)

type createInput struct {
	Body record.CreateRequest
}

type createOutput struct {
	Body record.Record
}

type findInput struct {
	ID string `path:"id" example:"6f1c2a1e-6d4b-4a53-9b8e-2f0b0d7c1a11" doc:"Record ID"`
}

type findOutput struct {
	Body record.Record
}
