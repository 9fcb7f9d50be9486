package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRecord struct {
	OwnerID uuid.UUID `validate:"uuid_required"`
	Name    string    `validate:"required"`
}

func TestUUIDRequired_RejectsZeroUUID(t *testing.T) {
	errs := ValidateStruct(&taggedRecord{OwnerID: uuid.New(), Name: "widget"})
	assert.Empty(t, errs)

	errs = ValidateStruct(&taggedRecord{Name: "widget"})
	require.Len(t, errs, 1)
	assert.Equal(t, "taggedRecord.OwnerID", errs[0].Field)
	assert.Equal(t, "uuid_required", errs[0].Rule)
}

func TestCheck_ReturnsFirstFailure(t *testing.T) {
	require.NoError(t, Check(&taggedRecord{OwnerID: uuid.New(), Name: "widget"}))

	err := Check(&taggedRecord{})
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "uuid_required", fieldErr.Rule)
	assert.Contains(t, err.Error(), "OwnerID")
}
