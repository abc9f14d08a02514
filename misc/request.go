package misc

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

var requestClient = &http.Client{
	Timeout: 30 * time.Second,
}

func Request(method, endpoint, reqData string, respData interface{}) error {
	return RequestWithHeaders(method, endpoint, reqData, nil, respData)
}

// Same as Request but attaches the given headers (auth tokens and the like).
func RequestWithHeaders(method, endpoint, reqData string, headers map[string]string, respData interface{}) error {
	var r *http.Request
	if reqData == "" {
		r, _ = http.NewRequest(method, endpoint, nil)
	} else {
		r, _ = http.NewRequest(method, endpoint, strings.NewReader(reqData))
	}
	r.Header.Add("Content-Type", "application/json")
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	resp, err := requestClient.Do(r)
	if err != nil {
		log.Println("Error when hitting:", endpoint, err)
		return err
	}

	defer resp.Body.Close()

	err = json.NewDecoder(resp.Body).Decode(&respData)
	if err != nil {
		log.Println("Error when unmarshalling from:", endpoint, err)
		return err
	}
	return nil
}
