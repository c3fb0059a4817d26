package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// A nickname is 1 to 32 letters, digits, spaces or ._'- and neither starts nor ends
// with a space.
const nicknameRegexPattern = `^(?=.{1,32}$)(?!\s)[\p{L}\p{N} ._'-]+(?<!\s)$`

var (
	nicknameExp = regexp2.MustCompile(nicknameRegexPattern, regexp2.None)

	errInvalidNickname = errors.New("the nickname must be 1 to 32 letters, digits, spaces or ._'- without surrounding spaces")
)

type JoinGuestRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

func (req *JoinGuestRequest) Validate() error {
	req.Nickname = strings.TrimSpace(req.Nickname)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nickname, validation.Required, validation.By(matchNickname)),
	)
}

func matchNickname(value any) error {
	s, _ := value.(string)
	ok, err := nicknameExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidNickname
	}

	return nil
}
