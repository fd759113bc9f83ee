package api

import (
	"io"
	"os"
	"path/filepath"

	"github.com/elan026/student-360/internal/config"
	"github.com/sirupsen/logrus"
)

const logTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// NewLoggerFromConfig 根据配置创建日志记录器
// 生产环境 JSON 输出,开发环境文本输出;级别解析失败回退 info
func NewLoggerFromConfig(cfg *config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(buildFormatter(cfg.Format))

	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	output, err := buildOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(output)

	// service 字段方便日志聚合端按服务过滤
	logger.AddHook(&serviceFieldHook{service: "student-360"})

	return logger, nil
}

// buildFormatter 按配置选择日志格式
func buildFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: logTimestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "time",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		}
	}
	return &logrus.TextFormatter{
		TimestampFormat: logTimestampFormat,
		FullTimestamp:   true,
	}
}

// buildOutput 按配置组装输出目标,stdout/file/both
func buildOutput(target string) (io.Writer, error) {
	var writers []io.Writer
	if target == "stdout" || target == "both" {
		writers = append(writers, os.Stdout)
	}
	if target == "file" || target == "both" {
		file, err := openLogFile()
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}
	if len(writers) == 0 {
		return os.Stdout, nil
	}
	return io.MultiWriter(writers...), nil
}

func openLogFile() (*os.File, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(logDir, "student-360.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

// serviceFieldHook 给每条日志加 service 字段
type serviceFieldHook struct {
	service string
}

func (h *serviceFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = h.service
	return nil
}
