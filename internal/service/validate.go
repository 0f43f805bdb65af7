package service

import (
	"regexp"
	"strings"
)

// Дата проверяется только по форме ДД.ММ.ГГГГ, календарной проверки нет:
// 31.02.2025 принимается и попадает в реестр как есть.
var dateRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// Сумма вводится без знака; запятая допускается как десятичный
// разделитель и нормализуется в точку. Пробелы и прочие разделители
// разрядов не допускаются.
var amountRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

func validDate(s string) bool {
	return dateRe.MatchString(s)
}

// normalizeAmount возвращает нормализованную сумму и признак валидности
func normalizeAmount(s string) (string, bool) {
	normalized := strings.ReplaceAll(s, ",", ".")
	if !amountRe.MatchString(normalized) {
		return "", false
	}
	return normalized, true
}
