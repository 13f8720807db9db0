package harness

import "encoding/base64"

// 1x1 transparent PNG used as the inspection photo upload payload.
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR4nGMAAQAABQABJ6k5VQAAAABJRU5ErkJggg=="

func tinyPNG() []byte {
	raw, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	if err != nil {
		// The fixture is a compile-time constant; a decode failure is a
		// programming error.
		panic(err)
	}
	return raw
}
