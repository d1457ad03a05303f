package repository

import (
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gangbro/missionboard/internal/cache"
	"github.com/gangbro/missionboard/internal/database"
	"github.com/gangbro/missionboard/internal/model"
)

var _ BrawlerRepository = &BrawlerDbRepository{}

type BrawlerDbRepository struct {
	logger      *slog.Logger
	brawlerFile string
	cache       *cache.Cache[uint, *model.Brawler]
	dbm         *database.DatabaseManager
}

func NewBrawlerDbRepository(brawlerFile string, dbm *database.DatabaseManager) *BrawlerDbRepository {
	u := &BrawlerDbRepository{
		brawlerFile: brawlerFile,
		logger:      slog.With(slog.String("logger", "brawler_repo")),
		dbm:         dbm,
	}

	u.cache = cache.NewWithTTL[uint, *model.Brawler](time.Second*10, u.loadBrawler)

	return u
}

func (u *BrawlerDbRepository) loadBrawler(id uint) (*model.Brawler, error) {
	return u.dbm.BrawlerQuery().Id(id).One()
}

// Start seeds the brawler table from the roster file when the table is empty.
func (u *BrawlerDbRepository) Start() error {
	n, err := u.dbm.BrawlerQuery().Count()
	if err != nil {
		return err
	}

	if n == 0 {
		return u.loadBrawlersFile()
	}

	return nil
}

func (u *BrawlerDbRepository) Get(id uint) *model.Brawler {
	if id == 0 {
		return nil
	}

	b, err := u.cache.Load(id)
	if err != nil {
		u.logger.Error("error loading brawler", slog.Uint64("id", uint64(id)), slog.Any("error", err))
	}

	return b
}

func (u *BrawlerDbRepository) GetByUsername(username string) *model.Brawler {
	if username == "" {
		return nil
	}

	b, err := u.dbm.BrawlerQuery().Username(username).One()
	if err != nil {
		u.logger.Error("error loading brawler", slog.String("username", username), slog.Any("error", err))
	}

	return b
}

func (u *BrawlerDbRepository) loadBrawlersFile() error {
	if _, err := os.Lstat(u.brawlerFile); os.IsNotExist(err) {
		return nil
	}

	dat, err := os.ReadFile(u.brawlerFile)
	if err != nil {
		return err
	}

	brawlers := make([]*model.Brawler, 0)

	if err1 := yaml.Unmarshal(dat, &brawlers); err1 != nil {
		return err1
	}

	for _, b := range brawlers {
		if b.Username != "" {
			if err1 := u.dbm.Save(b); err1 != nil {
				return err1
			}
		}
	}

	u.logger.Info("brawlers loaded from " + u.brawlerFile)

	return nil
}
