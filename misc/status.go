package misc

import "github.com/gin-gonic/gin"

type Status struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Id   string `json:"id,omitempty"`
}

func StatusOK(id string) *Status {
	return &Status{Code: 200, Msg: "success", Id: id}
}

func StatusErr(msg string) *Status {
	return &Status{Code: 500, Msg: msg}
}

func AbortWithErr(c *gin.Context, code int, err error) {
	c.JSON(code, &Status{Code: code, Msg: err.Error()})
	c.Abort()
}
