package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"genolens/api/models"
	fileKind "genolens/api/models/constants/file-kind"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testInterval = MinTickInterval

type failingFile struct {
	name string
	size int64
}

func (f failingFile) Name() string { return f.name }
func (f failingFile) Size() int64  { return f.size }
func (f failingFile) Open() (io.ReadCloser, error) {
	return nil, errors.New("disk on fire")
}

func collect(t *testing.T, u *Upload) []int {
	t.Helper()

	values := []int{}
	timeout := time.After(5 * time.Second)
	for {
		select {
		case v, ok := <-u.Progress():
			if !ok {
				return values
			}
			values = append(values, v)
		case <-timeout:
			t.Fatal("progress stream did not close")
			return values
		}
	}
}

func resultWithin(t *testing.T, u *Upload) (UploadResult, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return u.Result(ctx)
}

func TestBegin_ProgressIsMonotonicAndEndsAtHundredOnce(t *testing.T) {
	content := "##fileformat=VCFv4.2\n" + strings.Repeat("chr1\t12345\trs1\tA\tG\n", 20)
	simulator := NewSimulator(testInterval, zap.NewNop())

	u, err := simulator.Begin(models.NewInMemoryFile("sample.vcf", []byte(content)))
	require.NoError(t, err)
	assert.Equal(t, fileKind.VCF, u.Kind)

	values := collect(t, u)
	require.NotEmpty(t, values)

	hundreds := 0
	for i, v := range values {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, v, values[i-1])
		}
		if v == 100 {
			hundreds++
		}
	}
	assert.Equal(t, 1, hundreds)
	assert.Equal(t, 100, values[len(values)-1])

	result, err := resultWithin(t, u)
	require.NoError(t, err)
	assert.Equal(t, content, result.Content)
	assert.Equal(t, fileKind.VCF, result.Kind)
	assert.Equal(t, int64(len(content)), result.Size)
	assert.True(t, strings.HasPrefix(result.MimeType, "text/plain"))
}

func TestBegin_ZeroByteFileReportsSingleTick(t *testing.T) {
	u, err := NewSimulator(testInterval, zap.NewNop()).Begin(models.NewInMemoryFile("empty.fastq", nil))
	require.NoError(t, err)

	assert.Equal(t, []int{100}, collect(t, u))

	result, err := resultWithin(t, u)
	require.NoError(t, err)
	assert.Equal(t, "", result.Content)
	assert.Equal(t, fileKind.FASTQ, result.Kind)
}

func TestBegin_TinyFileStillReachesHundred(t *testing.T) {
	u, err := NewSimulator(testInterval, zap.NewNop()).Begin(models.NewInMemoryFile("genome_23andMe.txt", []byte("rs1 A")))
	require.NoError(t, err)

	values := collect(t, u)
	assert.Equal(t, 100, values[len(values)-1])
	assert.Equal(t, fileKind.TwentyThreeAndMe, u.Kind)
}

func TestCancel_ClosesStreamAndResolvesCancelled(t *testing.T) {
	u, err := NewSimulator(time.Hour, zap.NewNop()).Begin(models.NewInMemoryFile("big.bam", make([]byte, 1000)))
	require.NoError(t, err)

	u.Cancel()
	values := collect(t, u)
	assert.LessOrEqual(t, len(values), 1)

	_, err = resultWithin(t, u)
	assert.ErrorIs(t, err, ErrUploadCancelled)

	// idempotent
	u.Cancel()
	_, err = resultWithin(t, u)
	assert.ErrorIs(t, err, ErrUploadCancelled)
}

func TestCancel_AfterCompletionKeepsResult(t *testing.T) {
	u, err := NewSimulator(testInterval, zap.NewNop()).Begin(models.NewInMemoryFile("a.vcf", []byte("chr1")))
	require.NoError(t, err)

	collect(t, u)
	result, err := resultWithin(t, u)
	require.NoError(t, err)

	u.Cancel()
	again, err := resultWithin(t, u)
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestBegin_ReadFailureResolvesWithError(t *testing.T) {
	u, err := NewSimulator(testInterval, zap.NewNop()).Begin(failingFile{name: "broken.vcf", size: 10})
	require.NoError(t, err)

	values := collect(t, u)
	assert.Equal(t, 100, values[len(values)-1])

	_, err = resultWithin(t, u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestResult_HonoursContext(t *testing.T) {
	u, err := NewSimulator(time.Hour, zap.NewNop()).Begin(models.NewInMemoryFile("slow.bam", make([]byte, 1000)))
	require.NoError(t, err)
	defer u.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = u.Result(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBegin_RejectsNilFile(t *testing.T) {
	_, err := NewSimulator(testInterval, zap.NewNop()).Begin(nil)
	assert.Error(t, err)
}

func TestNewSimulator_ClampsInterval(t *testing.T) {
	assert.Equal(t, MinTickInterval, NewSimulator(time.Millisecond, zap.NewNop()).Interval())
	assert.Equal(t, MinTickInterval, NewSimulator(time.Nanosecond, zap.NewNop()).Interval())
	assert.Equal(t, DefaultTickInterval, NewSimulator(0, zap.NewNop()).Interval())
	assert.Equal(t, 25*time.Millisecond, NewSimulator(25*time.Millisecond, zap.NewNop()).Interval())
}

func TestBegin_SubMinimumIntervalStillCompletes(t *testing.T) {
	u, err := NewSimulator(time.Millisecond, zap.NewNop()).Begin(models.NewInMemoryFile("tiny.vcf", make([]byte, 300)))
	require.NoError(t, err)

	values := collect(t, u)
	require.NotEmpty(t, values)
	assert.Equal(t, 100, values[len(values)-1])

	_, err = resultWithin(t, u)
	assert.NoError(t, err)
}
