package utils

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/raceiq/raceiq-engine/log"
)

const retryInterval = 200 * time.Millisecond

// WaitForTCP dials addr until it succeeds, the timeout passes or ctx is done.
func WaitForTCP(ctx context.Context, addr string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()
	log.Debug("wait for tcp connection",
		log.String("addr", addr),
		log.Duration("timeout", timeout))
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()
			log.Debug("tcp connection successful",
				log.String("addr", addr),
				log.Duration("duration", time.Since(start)))
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s could not be reached after %v", addr, timeout)
		case <-time.After(retryInterval):
		}
	}
}

// ExtractFromDBURL returns host:port of a postgres url. The port defaults to 5432.
func ExtractFromDBURL(url string) string {
	return extractAddr(
		"^postgres(ql)?://(.*@)?(?P<addr>(?P<host>[^:/?]*?)(:(?P<port>\\d+))?)(/.*)?$",
		url, "5432")
}

// ExtractFromNatsURL returns host:port of a nats url. The port defaults to 4222.
func ExtractFromNatsURL(url string) string {
	return extractAddr(
		"^(nats|tls)://(.*@)?(?P<addr>(?P<host>[^:/?]*?)(:(?P<port>\\d+))?)/?$",
		url, "4222")
}

func extractAddr(regEx, url, defaultPort string) string {
	param := resolveRegex(regEx, url)
	if len(param) == 0 || param["host"] == "" {
		return ""
	}
	if port, ok := param["port"]; ok && port != "" {
		return param["addr"]
	}
	return fmt.Sprintf("%s:%s", param["addr"], defaultPort)
}

func resolveRegex(regEx, url string) (paramsMap map[string]string) {
	compRegEx := regexp.MustCompile(regEx)
	match := compRegEx.FindStringSubmatch(url)

	paramsMap = make(map[string]string)
	for i, name := range compRegEx.SubexpNames() {
		if name != "" && i < len(match) {
			paramsMap[name] = match[i]
		}
	}
	return paramsMap
}
