package config

// Constructors for tests that bypass flag parsing

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewSlackForTest(botToken, signingSecret string) *Slack {
	return &Slack{botToken: botToken, signingSecret: signingSecret}
}

func NewRepositoryForTest(backend, dsn string) *Repository {
	return &Repository{backend: backend, dsn: dsn}
}

func NewMessagesForTest(path string) *Messages {
	return &Messages{path: path}
}
