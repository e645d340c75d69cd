package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"instafilter/internal/logger"
	"instafilter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// DefaultMaxBytes caps the native memory held by live Mats
const DefaultMaxBytes int64 = 2 * 1024 * 1024 * 1024

// ErrMemoryLimit is returned when tracking a Mat would exceed the budget
var ErrMemoryLimit = errors.New("opencv memory limit exceeded")

// Manager accounts for every Mat a render allocates and closes them on release
type Manager struct {
	allocations map[uint64]*AllocationRecord
	mu          sync.RWMutex
	stats       Stats
	logger      logger.Logger
}

type AllocationRecord struct {
	Mat       *safe.Mat
	Tag       string
	CreatedAt time.Time
	Size      int64
}

type Stats struct {
	TotalAllocated int64
	TotalReleased  int64
	ActiveMats     int64
	PeakBytes      int64
	MaxAllowed     int64
}

// InUse returns the bytes held by live Mats
func (s Stats) InUse() int64 {
	return s.TotalAllocated - s.TotalReleased
}

func NewManager(maxBytes int64, log logger.Logger) *Manager {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		allocations: make(map[uint64]*AllocationRecord),
		stats:       Stats{MaxAllowed: maxBytes},
		logger:      log,
	}
}

// Track takes ownership of mat. Over budget, mat is closed and ErrMemoryLimit returned.
func (m *Manager) Track(mat *safe.Mat) error {
	if mat == nil || !mat.IsValid() {
		return fmt.Errorf("cannot track invalid Mat")
	}

	size := matSize(mat)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.allocations[mat.ID()]; exists {
		return nil
	}

	if m.stats.InUse()+size > m.stats.MaxAllowed {
		mat.Close()
		return fmt.Errorf("%w: %d bytes in use, %d requested", ErrMemoryLimit, m.stats.InUse(), size)
	}

	m.allocations[mat.ID()] = &AllocationRecord{
		Mat:       mat,
		Tag:       mat.Tag(),
		CreatedAt: time.Now(),
		Size:      size,
	}
	m.stats.TotalAllocated += size
	m.stats.ActiveMats++
	if inUse := m.stats.InUse(); inUse > m.stats.PeakBytes {
		m.stats.PeakBytes = inUse
	}

	return nil
}

// Release closes mat and stops accounting for it
func (m *Manager) Release(mat *safe.Mat) {
	if mat == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.allocations[mat.ID()]
	if !exists {
		m.logger.Debug("memory", "releasing untracked Mat", map[string]interface{}{
			"tag": mat.Tag(),
		})
		mat.Close()
		return
	}

	mat.Close()
	delete(m.allocations, mat.ID())
	m.stats.TotalReleased += record.Size
	m.stats.ActiveMats--
}

func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// Cleanup closes every Mat still tracked and returns how many there were
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	matCount := 0
	for id, record := range m.allocations {
		m.logger.Warning("memory", "closing leaked Mat", map[string]interface{}{
			"tag": record.Tag,
			"age": time.Since(record.CreatedAt).String(),
		})
		record.Mat.Close()
		m.stats.TotalReleased += record.Size
		m.stats.ActiveMats--
		delete(m.allocations, id)
		matCount++
	}

	return matCount
}

func matSize(mat *safe.Mat) int64 {
	return int64(mat.Rows()) * int64(mat.Cols()) * int64(elemSize(mat.Type()))
}

func elemSize(matType gocv.MatType) int {
	switch matType {
	case gocv.MatTypeCV8UC1:
		return 1
	case gocv.MatTypeCV8UC3:
		return 3
	case gocv.MatTypeCV8UC4:
		return 4
	case gocv.MatTypeCV16SC1, gocv.MatTypeCV16UC1:
		return 2
	case gocv.MatTypeCV16SC3, gocv.MatTypeCV16UC3:
		return 6
	case gocv.MatTypeCV32FC1:
		return 4
	case gocv.MatTypeCV32FC3:
		return 12
	default:
		return 1
	}
}
