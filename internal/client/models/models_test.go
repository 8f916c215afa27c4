package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" admin ")
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("SUPERUSER")
	assert.False(t, ok)
}

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		have, need Role
		want       bool
	}{
		{RoleStudent, "", true},
		{RoleStudent, RoleStudent, true},
		{RoleStudent, RoleAdmin, false},
		{RoleInstructor, RoleAdmin, false},
		{RoleAdmin, RoleInstructor, true},
		{RoleGuest, RoleStudent, false},
		{"", RoleStudent, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.have.Satisfies(tc.need), "%q satisfies %q", tc.have, tc.need)
	}
}

func TestProfile_DisplayName(t *testing.T) {
	var nilProfile *Profile
	assert.Equal(t, "", nilProfile.DisplayName())
	assert.Equal(t, "Ada Lovelace", (&Profile{FirstName: "Ada", LastName: "Lovelace", Email: "a@b.c"}).DisplayName())
	assert.Equal(t, "ada", (&Profile{Username: "ada", Email: "a@b.c"}).DisplayName())
	assert.Equal(t, "a@b.c", (&Profile{Email: "a@b.c"}).DisplayName())
}

func TestCredentials_CloneIsDeep(t *testing.T) {
	fac := int64(3)
	c := &Credentials{Access: "A1", Refresh: "R1", User: &Profile{ID: 1, Role: RoleAdmin, Faculty: &fac}}

	cp := c.Clone()
	cp.User.Role = RoleStudent
	*cp.User.Faculty = 9

	assert.Equal(t, RoleAdmin, c.User.Role)
	assert.Equal(t, int64(3), *c.User.Faculty)
	assert.Nil(t, (*Credentials)(nil).Clone())
}

func TestCredentials_JSONLayout(t *testing.T) {
	raw := `{"access":"A1","refresh":"R1","user":{"id":7,"email":"a@b.com","role":"ADMIN"}}`

	var c Credentials
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.True(t, c.Complete())
	assert.Equal(t, RoleAdmin, c.User.Role)
	assert.Equal(t, int64(7), c.User.ID)

	assert.False(t, (&Credentials{Access: "A"}).Complete())
}

func TestCredentials_KeepsUnknownUserAttributes(t *testing.T) {
	user := `{"id":7,"role":"STUDENT","faculty_details":{"id":2,"name":"Physics"},"date_joined":"2024-09-01T08:00:00Z"}`

	var c Credentials
	require.NoError(t, json.Unmarshal([]byte(`{"access":"A1","refresh":"R1","user":`+user+`}`), &c))
	assert.Equal(t, int64(7), c.User.ID)

	cp := c.Clone()
	cp.RawUser[0] = 'x'
	assert.JSONEq(t, user, string(c.RawUser))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"access":"A1","refresh":"R1","user":`+user+`}`, string(out))
}

func TestCredentials_MarshalWithoutRawUser(t *testing.T) {
	out, err := json.Marshal(&Credentials{Access: "A1", Refresh: "R1", User: &Profile{ID: 1, Role: RoleAdmin}})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"user":{"id":1,`)

	out, err = json.Marshal(Credentials{Access: "A1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"access":"A1","refresh":"","user":null}`, string(out))

	var c Credentials
	require.NoError(t, json.Unmarshal(out, &c))
	assert.Nil(t, c.User)
	assert.Nil(t, c.RawUser)
}

func TestAccessTokenExpiry(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	got, ok := AccessTokenExpiry(tok)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = AccessTokenExpiry("opaque-token")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = AccessTokenExpiry(noExp)
	assert.False(t, ok)
}
