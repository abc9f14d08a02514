package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/missionMeteora/mandrill"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

func New(loc string) (*Config, error) {
	var c Config

	f, err := os.Open(loc)
	if err != nil {
		log.Println("Config error", err)
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&c); err != nil {
		log.Println("Config error", err)
		return nil, err
	}

	if c.DBPath == "" || c.DBName == "" {
		return nil, ErrInvalidConfig
	}

	if c.LogsPath != "" {
		c.Loggers = NewLoggers(c.LogsPath)
	}

	return &c, nil
}

type Config struct {
	Host string `json:"host"`
	Port string `json:"port"`

	ServerURL string `json:"serverUrl"`
	APIPath   string `json:"apiPath"`

	DBPath      string `json:"dbPath"`
	DBName      string `json:"dbName"`
	CacheDBPath string `json:"cacheDbPath"`
	LogsPath    string `json:"logsPath"`

	// Sandbox suppresses outbound email, Stripe and suggestion calls in tests
	Sandbox bool `json:"sandbox"`

	OpenAI struct {
		Endpoint string `json:"endpoint"`
		Key      string `json:"key"`
		Model    string `json:"model"`
	} `json:"openai"`

	YouTube struct {
		Endpoint string `json:"endpoint"`
		Key      string `json:"key"`
	} `json:"youtube"`

	Twitch struct {
		Endpoint string `json:"endpoint"`
		ClientId string `json:"clientId"`
		Token    string `json:"token"`
	} `json:"twitch"`

	Stripe struct {
		Key string `json:"key"`
	} `json:"stripe"`

	Mandrill struct {
		Key        string `json:"key"`
		SubAccount string `json:"subAccount"`
		FromEmail  string `json:"fromEmail"`
		FromName   string `json:"fromName"`
	} `json:"mandrill"`

	Bucket struct {
		User         string   `json:"user"`
		ApiKey       string   `json:"apiKey"`
		Profile      string   `json:"profile"`
		Brand        string   `json:"brand"`
		Match        string   `json:"match"`
		Deal         string   `json:"deal"`
		DealActivity string   `json:"dealActivity"`
		Conversation string   `json:"conversation"`
		Invoice      string   `json:"invoice"`
		All          []string `json:"all"`
	} `json:"bucket"`

	Loggers *Loggers `json:"-"`

	mailOnce sync.Once
	mail     *mandrill.Client
}

// MailClient returns the shared mandrill client, or nil when no key is set
// (sandbox and test configs).
func (c *Config) MailClient() *mandrill.Client {
	c.mailOnce.Do(func() {
		if c.Mandrill.Key != "" {
			c.mail = mandrill.New(c.Mandrill.Key, c.Mandrill.SubAccount, c.Mandrill.FromEmail, c.Mandrill.FromName)
		}
	})
	return c.mail
}

// Loggers appends one JSON line per system event to a per-tag log file.
type Loggers struct {
	mu    sync.Mutex
	dir   string
	files map[string]*os.File
}

func NewLoggers(dir string) *Loggers {
	os.MkdirAll(dir, 0755)
	return &Loggers{dir: dir, files: make(map[string]*os.File)}
}

func (l *Loggers) Log(tag string, v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, ok := l.files[tag]
	if !ok {
		var err error
		f, err = os.OpenFile(filepath.Join(l.dir, tag+".log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		l.files[tag] = f
	}

	line := map[string]interface{}{"ts": time.Now().Unix(), "data": v}
	b, err := json.Marshal(line)
	if err != nil {
		return err
	}
	_, err = f.Write(append(b, '\n'))
	return err
}

func (l *Loggers) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.files {
		f.Close()
	}
	l.files = make(map[string]*os.File)
	return nil
}
