// 从 JSON 或 YAML 文件批量导入题目
//
// 文件内容是题目数组，每道题只写 uz 内容，ru / en 走正常的创建流程自动翻译：
//
//	- question: "Suvning kimyoviy formulasi?"
//	  options:
//	    - {text: "H2O", isCorrect: true}
//	    - {text: "CO2", isCorrect: false}
//	    - {text: "O2", isCorrect: false}
//	    - {text: "NaCl", isCorrect: false}
//
// 用法: go run scripts/import_questions.go -file questions/science.yaml [-category <id>]
// 未指定 -category 时按文件名匹配分类的英文名（science.yaml -> Science）。
// 同一分类下 uz 题干相同的题目会被跳过。

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"smart_quiz_backend/internal/config"
	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/repository"
	"smart_quiz_backend/internal/service"
	"smart_quiz_backend/pkg/database"
	"smart_quiz_backend/pkg/logger"
	"smart_quiz_backend/pkg/translator"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type questionFile struct {
	Question string             `json:"question" yaml:"question"`
	Options  []model.BaseOption `json:"options" yaml:"options"`
}

func main() {
	file := flag.String("file", "", "题目文件路径（.json / .yaml / .yml）")
	categoryID := flag.String("category", "", "分类ID，不填时按文件名匹配")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	items, err := readQuestions(*file)
	if err != nil {
		log.Fatalf("读取题目文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx := context.Background()
	categories := repository.NewCategoryRepository(db)
	questions := repository.NewQuestionRepository(db)

	id, err := resolveCategory(ctx, categories, *categoryID, *file)
	if err != nil {
		log.Fatalf("%v", err)
	}

	chain := translator.NewChain(translator.OptionsFromConfig(cfg.Translation), nil)
	qt := service.NewQuestionTranslator(chain, cfg.Translation.MaxConcurrent)
	svc := service.NewQuestionService(questions, categories, repository.NewUserRepository(db), qt, service.NewStorageService(cfg))

	existing, err := questions.List(ctx, id)
	if err != nil {
		log.Fatalf("读取已有题目失败: %v", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[strings.TrimSpace(q.Text.UZ)] = true
	}

	var created, skipped, failed int
	for i, item := range items {
		text := strings.TrimSpace(item.Question)
		if seen[text] {
			skipped++
			continue
		}

		q, err := svc.Create(ctx, service.QuestionInput{
			CategoryID: id,
			Text:       text,
			Options:    item.Options,
		})
		if err != nil {
			failed++
			logger.Log.Error("导入失败", zap.Int("index", i+1), zap.Error(err))
			continue
		}
		seen[text] = true
		created++
		logger.Log.Info("已导入", zap.Int("index", i+1), zap.String("id", q.ID))
	}

	log.Printf("完成: 新增 %d, 跳过 %d, 失败 %d", created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func readQuestions(path string) ([]questionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []questionFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	case ".json":
		err = json.Unmarshal(data, &items)
	default:
		return nil, fmt.Errorf("不支持的文件类型: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("文件中没有题目")
	}
	return items, nil
}

func resolveCategory(ctx context.Context, repo *repository.CategoryRepository, id, file string) (string, error) {
	if id != "" {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return "", fmt.Errorf("分类 %s: %w", id, err)
		}
		return id, nil
	}

	base := strings.ToLower(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
	categories, err := repo.List(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		en := strings.ToLower(c.Name.Text().EN)
		// games.json 也要匹配 Game
		if en != "" && (strings.Contains(base, en) || strings.Contains(en, base)) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("无法根据文件名 %q 确定分类，请使用 -category 指定", base)
}
