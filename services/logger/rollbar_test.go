package logsvc

import (
	"bytes"
	"fmt"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/hagwon/core"
)

func newTestLogger(buf *bytes.Buffer) *RollbarLogger {
	l := NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "TEST", TestMode: true})
	l.Enable(false)
	return l
}

func TestRollbarLogger_prepare(t *testing.T) {
	l := newTestLogger(new(bytes.Buffer))
	err1, err2 := errors.New("first"), errors.New("second")

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{name: "message only", want: []interface{}{"msg"}},
		{name: "error", args: []interface{}{err1}, want: []interface{}{"msg", err1}},
		{
			name: "single error kept",
			args: []interface{}{err1, err2},
			want: []interface{}{"msg", err1, map[string]interface{}{"args": []interface{}{"second"}}},
		},
		{
			name: "fields merged",
			args: []interface{}{Fields{"year": 2024}, 42, Fields{"job": "promotion"}},
			want: []interface{}{"msg", map[string]interface{}{
				"year": 2024, "job": "promotion", "args": []interface{}{42},
			}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, l.prepare("msg", tc.args))
		})
	}
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	l := newTestLogger(buf)

	l.Info("promotion done", Fields{"year": 2024, "promoted": 3})
	l.Error("promotion failed", fmt.Errorf("boom"))

	assert.Equal(t, "INFO promotion done promoted=3 year=2024\nERROR promotion failed | boom\n", buf.String())
}
