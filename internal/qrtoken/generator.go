package qrtoken

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Charset 生成码牌所用的字符集，仅小写字母和数字，大小写不敏感的场景下安全
	Charset = "0123456789abcdefghijklmnopqrstuvwxyz"
	// TokenLength 码牌长度
	TokenLength = 10
	// ChannelBufferSize 码牌通道的缓冲区大小
	ChannelBufferSize = 1000
	// MinFillThreshold 触发补充的最小阈值
	MinFillThreshold = 100
)

// Generator 负责生成和提供唯一的二维码码牌
type Generator struct {
	db        *gorm.DB
	tokenChan chan string
	mu        sync.Mutex
	isFilling bool
	stopChan  chan struct{}
	logger    *zap.SugaredLogger
}

// NewGenerator 创建一个新的码牌生成器实例
func NewGenerator(db *gorm.DB, logger *zap.SugaredLogger) *Generator {
	return &Generator{
		db:        db,
		tokenChan: make(chan string, ChannelBufferSize),
		stopChan:  make(chan struct{}),
		logger:    logger.Named("qrtoken_generator"),
	}
}

// Start 启动后台码牌生成和补充任务
func (g *Generator) Start() {
	g.logger.Info("启动码牌生成器...")
	go g.fillChannel() // 初始填充
	go g.monitorAndRefill()
}

// Stop 停止码牌生成器
func (g *Generator) Stop() {
	g.logger.Info("正在停止码牌生成器...")
	close(g.stopChan)
}

// GetToken 从通道中获取一个唯一的码牌
func (g *Generator) GetToken() string {
	return <-g.tokenChan
}

// monitorAndRefill 监视通道的填充水平并根据需要进行补充
func (g *Generator) monitorAndRefill() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if len(g.tokenChan) < MinFillThreshold {
				g.fillChannel()
			}
		case <-g.stopChan:
			g.logger.Info("已停止监控和补充任务。")
			return
		}
	}
}

// fillChannel 是一个后台 goroutine，用于生成码牌并填充通道
func (g *Generator) fillChannel() {
	g.mu.Lock()
	if g.isFilling {
		g.mu.Unlock()
		return
	}
	g.isFilling = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.isFilling = false
		g.mu.Unlock()
	}()

	g.logger.Infof("通道中剩余 %d 个码牌，开始补充...", len(g.tokenChan))
	for len(g.tokenChan) < ChannelBufferSize {
		select {
		case <-g.stopChan:
			g.logger.Info("填充任务已中断。")
			return
		default:
			token, err := g.generateUniqueToken()
			if err != nil {
				g.logger.Errorf("生成唯一码牌时出错: %v", err)
				time.Sleep(100 * time.Millisecond) // 避免在错误情况下快速循环
				continue
			}
			if token != "" {
				g.tokenChan <- token
			}
		}
	}
	g.logger.Infof("码牌通道已填满，现有 %d 个。", len(g.tokenChan))
}

// generateUniqueToken 生成一个在数据库中唯一的码牌
func (g *Generator) generateUniqueToken() (string, error) {
	for i := 0; i < 10; i++ { // 尝试最多10次
		token, err := RandomToken()
		if err != nil {
			return "", err
		}
		if !g.isTokenExist(token) {
			return token, nil
		}
	}
	g.logger.Warn("已尝试10次生成码牌，但均存在冲突。")
	return "", nil // 返回空字符串表示需要重试
}

// RandomToken 使用加密安全的随机数生成器生成一个码牌
// 字符空间 36^10，碰撞概率可忽略；最终由数据库唯一索引兜底
func RandomToken() (string, error) {
	b := make([]byte, TokenLength)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Charset))))
		if err != nil {
			return "", err
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}

// isTokenExist 检查给定的码牌是否已在数据库中存在
func (g *Generator) isTokenExist(token string) bool {
	var count int64
	if err := g.db.Table("qr_redirects").Where("code_token = ?", token).Count(&count).Error; err != nil {
		g.logger.Errorf("查询数据库时出错: %v", err)
		// 在不确定的情况下，保守地认为它存在以避免冲突
		return true
	}
	return count > 0
}
