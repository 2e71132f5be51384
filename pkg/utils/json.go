package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor com indentação de dois espaços
func PrettyJson(in any) (string, error) {
	buffer, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}

	return string(buffer), nil
}
