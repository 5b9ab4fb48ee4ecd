// Package i18n provides internationalization support for the freight rate service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// Supports reports whether locale has its own message table.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first supported language of the Accept-Language header.
// Region subtags are dropped (pt-BR resolves to pt) and q=0 entries are skipped.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	translator := GetTranslator()
	for _, part := range strings.Split(acceptLang, ",") {
		fields := strings.Split(part, ";")
		if len(fields) > 1 && strings.TrimSpace(fields[1]) == "q=0" {
			continue
		}
		lang := strings.ToLower(strings.TrimSpace(fields[0]))
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		if translator.Supports(lang) {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":                 "Invalid request",
			"error.invalid_request_body":            "Invalid request body",
			"error.internal_error":                  "An unexpected error occurred",
			"error.not_found":                       "Not found",
			"error.rate_limit_exceeded":             "Too many requests, please try again later",
			"error.timeout":                         "Request timed out",
			"error.service_unavailable":             "Rate data is temporarily unavailable",
			"error.validation.package":              "Weight and dimensions must be positive numbers",
			"error.validation.ship_date":            "ship_date: must be a date in YYYY-MM-DD format",
			"error.product_not_found":               "Product not found",
			"error.product_not_effective":           "Product is not effective on the ship date",
			"error.origin_not_supported":            "No zone table for the origin postal code",
			"error.zone_not_found":                  "Destination postal code is outside every zone",
			"error.rate_table_mismatch":             "Rate table has no entry for the zone",
			"error.no_fuel_rate_effective":          "No fuel surcharge rate is effective on the ship date",
			"error.unauthorized_fee_not_configured": "Package exceeds carrier limits and the product has no unauthorized fee",

			// Success messages
			"success.cache_purged": "Caches cleared",
		},
		"pt": {
			// Error messages
			"error.invalid_request":                 "Requisição inválida",
			"error.invalid_request_body":            "Corpo da requisição inválido",
			"error.internal_error":                  "Ocorreu um erro inesperado",
			"error.not_found":                       "Não encontrado",
			"error.rate_limit_exceeded":             "Muitas requisições, tente novamente mais tarde",
			"error.timeout":                         "Tempo de requisição esgotado",
			"error.service_unavailable":             "Dados de tarifa temporariamente indisponíveis",
			"error.validation.package":              "Peso e dimensões devem ser números positivos",
			"error.validation.ship_date":            "ship_date: deve ser uma data no formato AAAA-MM-DD",
			"error.product_not_found":               "Produto não encontrado",
			"error.product_not_effective":           "Produto não está vigente na data de envio",
			"error.origin_not_supported":            "Não há tabela de zonas para o CEP de origem",
			"error.zone_not_found":                  "CEP de destino fora de todas as zonas",
			"error.rate_table_mismatch":             "Tabela de tarifas sem valor para a zona",
			"error.no_fuel_rate_effective":          "Nenhuma taxa de combustível vigente na data de envio",
			"error.unauthorized_fee_not_configured": "Pacote excede os limites da transportadora e o produto não tem taxa de não autorizado",

			// Success messages
			"success.cache_purged": "Caches limpos",
		},
		"nl": {
			// Error messages
			"error.invalid_request":                 "Ongeldig verzoek",
			"error.invalid_request_body":            "Ongeldige aanvraag body",
			"error.internal_error":                  "Er is een onverwachte fout opgetreden",
			"error.not_found":                       "Niet gevonden",
			"error.rate_limit_exceeded":             "Te veel verzoeken, probeer het later opnieuw",
			"error.timeout":                         "Verzoek verlopen",
			"error.service_unavailable":             "Tariefgegevens zijn tijdelijk niet beschikbaar",
			"error.validation.package":              "Gewicht en afmetingen moeten positieve getallen zijn",
			"error.validation.ship_date":            "ship_date: moet een datum zijn in het formaat JJJJ-MM-DD",
			"error.product_not_found":               "Product niet gevonden",
			"error.product_not_effective":           "Product is niet geldig op de verzenddatum",
			"error.origin_not_supported":            "Geen zonetabel voor de postcode van herkomst",
			"error.zone_not_found":                  "Postcode van bestemming valt buiten alle zones",
			"error.rate_table_mismatch":             "Tarieftabel heeft geen waarde voor de zone",
			"error.no_fuel_rate_effective":          "Geen brandstoftoeslag geldig op de verzenddatum",
			"error.unauthorized_fee_not_configured": "Pakket overschrijdt de limieten van de vervoerder en het product heeft geen toeslag daarvoor",

			// Success messages
			"success.cache_purged": "Caches geleegd",
		},
		"zh": {
			// Error messages
			"error.invalid_request":                 "无效请求",
			"error.invalid_request_body":            "无效的请求体",
			"error.internal_error":                  "发生意外错误",
			"error.not_found":                       "未找到",
			"error.rate_limit_exceeded":             "请求过多，请稍后再试",
			"error.timeout":                         "请求超时",
			"error.service_unavailable":             "运价数据暂时不可用",
			"error.validation.package":              "重量和尺寸必须为正数",
			"error.validation.ship_date":            "ship_date：日期格式必须为 YYYY-MM-DD",
			"error.product_not_found":               "未找到产品",
			"error.product_not_effective":           "产品在发货日期未生效",
			"error.origin_not_supported":            "没有该起始邮编的分区表",
			"error.zone_not_found":                  "目的地邮编不在任何分区内",
			"error.rate_table_mismatch":             "运价表缺少该分区的价格",
			"error.no_fuel_rate_effective":          "发货日期没有生效的燃油附加费率",
			"error.unauthorized_fee_not_configured": "包裹超出承运商限制，且产品未配置超限费用",

			// Success messages
			"success.cache_purged": "缓存已清除",
		},
	}
}
