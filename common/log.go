package common

import (
	"fmt"

	"github.com/cihub/seelog"
)

const logFormat = "%LEVEL %Date-%Time] (%File:%Line): %Msg%n"

// Logger stays disabled until main installs the configured one.
var Logger seelog.LoggerInterface = seelog.Disabled

// InitLog logs to console when logFile is empty, otherwise to logFile.
// level is a seelog level name, "" means debug.
func InitLog(logFile, level string) (seelog.LoggerInterface, error) {
	if level == "" {
		level = "debug"
	}
	if _, ok := seelog.LogLevelFromString(level); !ok {
		return nil, fmt.Errorf("unknown log level[%v]", level)
	}

	output := "<console />"
	if len(logFile) != 0 {
		output = `<file path="` + logFile + `"/>`
	}

	logConfig := fmt.Sprintf(`
		<seelog minlevel="%s">
			<outputs formatid="main">
				%s
			</outputs>
			<formats>
				<format id="main" format="%s"/>
			</formats>
		</seelog>`, level, output, logFormat)
	return seelog.LoggerFromConfigAsBytes([]byte(logConfig))
}
