package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pessoas-api/backend/internal/domain"
)

func ptr(s string) *string { return &s }

func validInput() domain.PersonInput {
	return domain.PersonInput{
		Nickname:  ptr("zeze"),
		Name:      ptr("José Souza"),
		BirthDate: ptr("2000-05-01"),
		Tags:      []string{"Go", "Python"},
	}
}

// assertValidationMessage fails unless err is a *domain.ValidationError with the given message.
func assertValidationMessage(t *testing.T, err error, message string) {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, message, verr.Message)
}

func TestPersonInput_Validate_Valid(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestPersonInput_Validate_NilTags(t *testing.T) {
	in := validInput()
	in.Tags = nil

	assert.NoError(t, in.Validate())
}

func TestPersonInput_Validate_LimitsAreInclusive(t *testing.T) {
	in := validInput()
	in.Nickname = ptr(strings.Repeat("a", domain.MaxNicknameLength))
	in.Name = ptr(strings.Repeat("b", domain.MaxNameLength))
	in.Tags = []string{strings.Repeat("c", domain.MaxTagLength)}

	assert.NoError(t, in.Validate())
}

func TestPersonInput_Validate_CountsCharactersNotBytes(t *testing.T) {
	in := validInput()
	// 32 two-byte characters.
	in.Nickname = ptr(strings.Repeat("é", domain.MaxNicknameLength))

	assert.NoError(t, in.Validate())
}

func TestPersonInput_Validate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *domain.PersonInput)
		message string
	}{
		{"missing nickname", func(in *domain.PersonInput) { in.Nickname = nil }, domain.MsgInvalidNickname},
		{"long nickname", func(in *domain.PersonInput) { in.Nickname = ptr(strings.Repeat("a", 33)) }, domain.MsgInvalidNickname},
		{"missing name", func(in *domain.PersonInput) { in.Name = nil }, domain.MsgInvalidName},
		{"long name", func(in *domain.PersonInput) { in.Name = ptr(strings.Repeat("a", 101)) }, domain.MsgInvalidName},
		{"missing birth date", func(in *domain.PersonInput) { in.BirthDate = nil }, domain.MsgInvalidBirthDate},
		{"long tag", func(in *domain.PersonInput) { in.Tags = []string{"Go", strings.Repeat("x", 33)} }, domain.MsgInvalidTags},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			assertValidationMessage(t, in.Validate(), tc.message)
		})
	}
}

func TestPersonInput_Validate_FirstFailureWins(t *testing.T) {
	in := domain.PersonInput{}

	assertValidationMessage(t, in.Validate(), domain.MsgInvalidNickname)
}

func TestPersonInput_Validate_MalformedFieldsKeepFieldOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *domain.PersonInput)
		message string
	}{
		{
			"malformed name loses to missing nickname",
			func(in *domain.PersonInput) {
				in.Nickname = nil
				in.Name = nil
				in.Malformed = map[domain.Field]string{domain.FieldName: domain.MsgInvalidName}
			},
			domain.MsgInvalidNickname,
		},
		{
			"malformed stack loses to malformed nickname",
			func(in *domain.PersonInput) {
				in.Nickname, in.Tags = nil, nil
				in.Malformed = map[domain.Field]string{
					domain.FieldTags:     domain.MsgTagsNotList,
					domain.FieldNickname: domain.MsgInvalidNickname,
				}
			},
			domain.MsgInvalidNickname,
		},
		{
			"malformed birth date loses to long nickname",
			func(in *domain.PersonInput) {
				in.Nickname = ptr(strings.Repeat("a", 39))
				in.BirthDate = nil
				in.Malformed = map[domain.Field]string{domain.FieldBirthDate: domain.MsgInvalidBirthDate}
			},
			domain.MsgInvalidNickname,
		},
		{
			"malformed stack reported when earlier fields pass",
			func(in *domain.PersonInput) {
				in.Tags = nil
				in.Malformed = map[domain.Field]string{domain.FieldTags: domain.MsgTagsNotList}
			},
			domain.MsgTagsNotList,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			assertValidationMessage(t, in.Validate(), tc.message)
		})
	}
}

func TestPersonInput_WithID(t *testing.T) {
	id := uuid.New()

	got := validInput().WithID(id)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "zeze", got.Nickname)
	assert.Equal(t, "José Souza", got.Name)
	assert.Equal(t, "2000-05-01", got.BirthDate)
	assert.Equal(t, []string{"Go", "Python"}, got.Tags)
}

func TestPersonInput_WithID_EmptyTagsBecomeNil(t *testing.T) {
	in := validInput()
	in.Tags = []string{}

	got := in.WithID(uuid.New())

	assert.Nil(t, got.Tags)
}
