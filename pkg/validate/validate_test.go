package validate_test

import (
	"testing"

	"github.com/Astemirdum/bookshelf-service/pkg/validate"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator_Validate(t *testing.T) {
	t.Parallel()
	type req struct {
		Name  string `validate:"required"`
		Total int    `validate:"min=0"`
		Done  int    `validate:"min=0,ltefield=Total"`
	}
	tests := []struct {
		name string
		in   req
		want map[string]string
	}{
		{name: "ok", in: req{Name: "a", Total: 10, Done: 10}},
		{name: "required", in: req{Total: 1}, want: map[string]string{"Name": "required"}},
		{name: "ltefield", in: req{Name: "a", Total: 1, Done: 2}, want: map[string]string{"Done": "ltefield"}},
		{name: "min", in: req{Name: "a", Total: -1, Done: -2}, want: map[string]string{"Total": "min", "Done": "min"}},
	}
	v := validate.NewCustomValidator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(tt.in)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, tt.want, validate.FieldErrors(err))
		})
	}
}

func TestFieldErrors_NotValidation(t *testing.T) {
	require.Nil(t, validate.FieldErrors(errors.New("boom")))
	require.Nil(t, validate.FieldErrors(nil))
}
