package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolatef(t *testing.T) {
	assert.PanicsWithError(t, `contract violation: insert into undeclared table "users"`, func() {
		Violatef("insert into undeclared table %q", "users")
	})
}

func TestContractViolation_Error(t *testing.T) {
	err := &ContractViolation{Message: "unsupported literal"}
	assert.Equal(t, "contract violation: unsupported literal", err.Error())
}
