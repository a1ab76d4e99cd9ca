// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package s3

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/rs/zerolog"
)

// awsLogLevel - SDK request logging follows the debug and trace levels of the tool.
func awsLogLevel(logLevel string) aws.LogLevelType {
	switch logLevel {
	case zerolog.LevelDebugValue, zerolog.LevelTraceValue:
		return aws.LogDebug | aws.LogDebugWithRequestErrors | aws.LogDebugWithRequestRetries
	}
	return aws.LogOff
}

// newAWSLogger - forwards SDK messages to the logger as a single debug line.
func newAWSLogger(l zerolog.Logger, bucket string) aws.Logger {
	return aws.LoggerFunc(func(args ...interface{}) {
		l.Debug().
			Str("Bucket", bucket).
			Msg(strings.TrimSpace(fmt.Sprintln(args...)))
	})
}
