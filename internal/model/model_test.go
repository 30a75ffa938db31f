package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGimmickIsDefaultFor(t *testing.T) {
	tests := []struct {
		gimmick  string
		wrestler string
		want     bool
	}{
		{"Hulk Hogan", "Hulk Hogan", true},
		{"hulk hogan", "Hulk Hogan", true},
		{" Hulk Hogan ", "Hulk Hogan", true},
		{"Hollywood Hogan", "Hulk Hogan", false},
		{"", "Hulk Hogan", false},
	}

	for _, tt := range tests {
		g := Gimmick{Name: tt.gimmick}
		assert.Equal(t, tt.want, g.IsDefaultFor(tt.wrestler), "gimmick %q vs %q", tt.gimmick, tt.wrestler)
	}
}
