package ssl

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

func TlsHandler(host string, port int) gin.HandlerFunc {
	return func(c *gin.Context) {
		secureMiddleware := secure.New(secure.Options{
			SSLRedirect: true,
			SSLHost:     host + ":" + strconv.Itoa(port),
		})
		// Process writes the redirect itself; on error the response is already
		// handled, so just stop the chain without c.Abort().
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			return
		}

		c.Next()
	}
}
