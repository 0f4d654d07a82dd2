package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "folder and filename",
			url:  "https://res.cloudinary.com/demo/image/upload/inventario/resistor.jpg",
			want: "inventario/resistor",
		},
		{
			name: "versioned path kept as subpath",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/inventario/led.png",
			want: "v1712345678/inventario/led",
		},
		{
			name: "no folder",
			url:  "https://res.cloudinary.com/demo/image/upload/sensor.webp",
			want: "sensor",
		},
		{
			name: "filename without extension",
			url:  "https://res.cloudinary.com/demo/image/upload/inventario/sensor",
			want: "inventario/sensor",
		},
		{
			name: "missing upload marker",
			url:  "https://example.com/static/images/resistor.jpg",
			want: "",
		},
		{
			name: "empty input",
			url:  "",
			want: "",
		},
		{
			name: "marker as final segment",
			url:  "https://res.cloudinary.com/demo/image/upload",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicIDFromURL(tc.url))
		})
	}
}

func TestPublicIDFromURLIsStable(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/inventario/arduino.jpg"
	first := PublicIDFromURL(url)
	second := PublicIDFromURL(url)
	assert.Equal(t, first, second)
	assert.Equal(t, "inventario/arduino", first)
}
