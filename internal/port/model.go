package port

import "context"

// Image carries raw image bytes and their MIME type for a vision-model call.
type Image struct {
	Bytes     []byte
	MediaType string
}

// ModelClient abstracts the remote vision/text model. With a nil image the
// call is text-only. The response is free-form text, usually but not always
// containing the requested JSON. No retries happen at this layer.
type ModelClient interface {
	Generate(ctx context.Context, prompt string, image *Image) (string, error)
}
