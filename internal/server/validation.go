package server

import (
	"sync"

	"punchline/internal/game"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("gamecode", func(fl validator.FieldLevel) bool {
			return game.IsShortCode(fl.Field().String())
		})
		_ = engine.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
			_, err := game.NormalizeNickname(fl.Field().String())
			return err == nil
		})
	})
}
