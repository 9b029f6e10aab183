package creation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/recordkit/internal/domain"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

func testType(t *testing.T, required ...string) datatype.DataType {
	t.Helper()
	mk := func(name string, kind field.Kind, attrs field.Attrs) field.Field {
		f, err := field.New(name, kind, attrs)
		require.NoError(t, err)
		return f
	}
	fields := []field.Field{
		mk("x", field.String, field.Attrs{Description: "Field X"}),
		mk("y", field.String, field.Attrs{}),
		mk("count", field.Integer, field.Attrs{}),
		mk("weight", field.Number, field.Attrs{}),
		mk("active", field.Boolean, field.Attrs{}),
		mk("location", field.GeoPoint, field.Attrs{}),
	}
	dt, err := datatype.New("asset", "Asset", fields, required, "")
	require.NoError(t, err)
	return dt
}

func TestBuildPayload_FailFastInDeclarationOrder(t *testing.T) {
	dt := testType(t, "x", "y")

	_, err := BuildPayload(dt, Config{}, map[string]any{"x": "", "y": "  "})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "x", verr.Field)
	assert.Equal(t, "Field X is required", err.Error())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildPayload_ExtraRequiredFromConfig(t *testing.T) {
	dt := testType(t)

	_, err := BuildPayload(dt, Config{RequiredFields: []string{"y"}}, map[string]any{"x": "a"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "y", verr.Field)
}

func TestBuildPayload_LabelOverride(t *testing.T) {
	dt := testType(t, "x")

	_, err := BuildPayload(dt, Config{Labels: map[string]string{"x": "Summary"}}, nil)
	require.Error(t, err)
	assert.Equal(t, "Summary is required", err.Error())
}

func TestBuildPayload_DisabledFieldsSkipped(t *testing.T) {
	dt := testType(t, "x")

	payload, err := BuildPayload(dt, Config{EnabledFields: []string{"y"}}, map[string]any{"y": "b", "x": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"y": "b"}, payload)
}

func TestBuildPayload_EmptyAllowListOffersNothing(t *testing.T) {
	dt := testType(t, "x")

	payload, err := BuildPayload(dt, Config{EnabledFields: []string{}}, nil)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestBuildPayload_BooleanNeverEmpty(t *testing.T) {
	dt := testType(t, "active")

	payload, err := BuildPayload(dt, Config{}, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, false, payload["active"])
}

func TestBuildPayload_GeoPointRequired(t *testing.T) {
	dt := testType(t, "location")

	_, err := BuildPayload(dt, Config{}, map[string]any{"location": record.GeoPoint{}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "location", verr.Field)

	lat := 10.0
	payload, err := BuildPayload(dt, Config{}, map[string]any{"location": record.GeoPoint{Latitude: &lat}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"latitude": 10.0, "longitude": nil}, payload["location"])
}

func TestBuildPayload_GeoPointOutOfRange(t *testing.T) {
	dt := testType(t)

	_, err := BuildPayload(dt, Config{}, map[string]any{"location": record.Point(95, 0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestBuildPayload_NumericCoercion(t *testing.T) {
	dt := testType(t)

	payload, err := BuildPayload(dt, Config{}, map[string]any{"count": "42", "weight": " 2.5 "})
	require.NoError(t, err)
	assert.Equal(t, int64(42), payload["count"])
	assert.Equal(t, 2.5, payload["weight"])
}

func TestBuildPayload_NumericBlankIsNil(t *testing.T) {
	dt := testType(t)

	payload, err := BuildPayload(dt, Config{}, map[string]any{"count": "", "weight": nil})
	require.NoError(t, err)
	assert.Nil(t, payload["count"])
	assert.Nil(t, payload["weight"])
}

func TestBuildPayload_NumericErrors(t *testing.T) {
	dt := testType(t)

	tests := []struct {
		name   string
		values map[string]any
		field  string
		reason string
	}{
		{"not a number", map[string]any{"weight": "heavy"}, "weight", "must be a number"},
		{"NaN text", map[string]any{"weight": "NaN"}, "weight", "must be a number"},
		{"fractional integer", map[string]any{"count": 1.5}, "count", "must be a whole number"},
		{"integer overflow", map[string]any{"count": 1e300}, "count", "is out of range"},
		{"integer overflow text", map[string]any{"count": "1e19"}, "count", "is out of range"},
		{"integer underflow", map[string]any{"count": -1e30}, "count", "is out of range"},
		{"integer at 2^63", map[string]any{"count": 9223372036854775808.0}, "count", "is out of range"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildPayload(dt, Config{}, tc.values)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}
}

func TestBuildPayload_NoSchema(t *testing.T) {
	dt, err := datatype.New("empty", "", nil, nil, "")
	require.NoError(t, err)

	_, err = BuildPayload(dt, Config{}, nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(field.String, nil))
	assert.True(t, IsEmpty(field.Text, "   "))
	assert.False(t, IsEmpty(field.String, "x"))
	assert.False(t, IsEmpty(field.Number, 0.0))
	assert.False(t, IsEmpty(field.Boolean, nil))
	assert.True(t, IsEmpty(field.GeoPoint, nil))
	assert.False(t, IsEmpty(field.GeoPoint, record.Point(0, 0)))
	assert.True(t, IsEmpty(field.Reference, nil))
}
