package transcriber

import "fmt"

// ModelSize selects the whisper model, trading accuracy for
// latency and memory.
type ModelSize string

const (
	ModelTiny   ModelSize = "tiny"
	ModelBase   ModelSize = "base"
	ModelSmall  ModelSize = "small"
	ModelMedium ModelSize = "medium"
	ModelLarge  ModelSize = "large"
)

// ParseModelSize validates a user-supplied model name.
func ParseModelSize(s string) (ModelSize, error) {
	switch ModelSize(s) {
	case ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge:
		return ModelSize(s), nil
	}
	return "", fmt.Errorf("unknown model size %q (expected tiny, base, small, medium or large)", s)
}

// FileName returns the ggml model file name for this size.
func (m ModelSize) FileName() string {
	return fmt.Sprintf("ggml-%s.bin", string(m))
}
