package api

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
)

const passwordSpecials = "@$!%*?&"

var (
	registerOnce sync.Once
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// RegisterValidators adds the domain tags to gin's binding validator:
//
//	calcmethod  a prayer calculation method id (MWL, ISNA, ...)
//	dailyprayer one of the five daily prayers
//	username    letters, digits and underscores
//	password    mixes lower and upper case, a digit and one of @$!%*?&
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Fatal().Msg("api.RegisterValidators: unexpected validator engine")
		}
		rules := map[string]validator.Func{
			"calcmethod":  validMethod,
			"dailyprayer": validDailyPrayer,
			"username":    validUsername,
			"password":    validPassword,
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				log.Fatal().Err(err).Str("tag", tag).Msg("failed to register validator")
			}
		}
	})
}

func validMethod(fl validator.FieldLevel) bool {
	return calc.Method(fl.Field().String()).Valid()
}

func validDailyPrayer(fl validator.FieldLevel) bool {
	p := calc.Prayer(fl.Field().String())
	for _, daily := range calc.DailyPrayers {
		if p == daily {
			return true
		}
	}
	return false
}

func validUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

func validPassword(fl validator.FieldLevel) bool {
	return StrongPassword(fl.Field().String())
}

func StrongPassword(s string) bool {
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}
