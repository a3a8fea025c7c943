package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/listing-portal/internal/pkg/utils"
)

const localeLocalsKey = "locale"

// LocaleResolver - проверка поддерживаемых локалей
type LocaleResolver interface {
	ResolveLocale(locale string) (string, error)
	DefaultLocale() string
}

// Locale определяет язык запроса. Явный ?locale= должен быть поддерживаемым,
// Accept-Language используется как подсказка и при неудаче даёт язык по умолчанию.
func Locale(resolver LocaleResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if explicit := c.Query("locale"); explicit != "" {
			locale, err := resolver.ResolveLocale(explicit)
			if err != nil {
				return utils.SendError(c, err)
			}
			c.Locals(localeLocalsKey, locale)
			return c.Next()
		}

		locale := resolver.DefaultLocale()
		if lang := primaryLanguage(c.Get(fiber.HeaderAcceptLanguage)); lang != "" {
			if resolved, err := resolver.ResolveLocale(lang); err == nil {
				locale = resolved
			}
		}
		c.Locals(localeLocalsKey, locale)
		return c.Next()
	}
}

// RequestLocale - язык, выбранный middleware Locale
func RequestLocale(c *fiber.Ctx) string {
	locale, _ := c.Locals(localeLocalsKey).(string)
	return locale
}

// primaryLanguage - "ru-RU,ru;q=0.9" -> "ru"
func primaryLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	lang, _, _ := strings.Cut(strings.TrimSpace(first), "-")
	return strings.ToLower(lang)
}
