package workloads

// Integer LU decomposition and linear solve over a fixed generated matrix.
// All working storage sits in a context record sized like the original's
// static arrays; the oracle compares the full solution vector against a
// fixed reference.

const (
	ludScaleFactor = 1
	ludOrder       = 5
)

var ludReference = [20]int64{0, 0, 1, 1, 1, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

type ludContext struct {
	a [20][20]int64
	b [20]int64
	x [20]int64
	y [100]int64
}

func (ctx *ludContext) decompose(n int) int {
	// LU decomposition, in place in a.
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			w := ctx.a[j][i]
			if i != 0 {
				for k := 0; k < i; k++ {
					w -= ctx.a[j][k] * ctx.a[k][i]
				}
			}
			ctx.a[j][i] = w / ctx.a[i][i]
		}
		for j := i + 1; j <= n; j++ {
			w := ctx.a[i+1][j]
			for k := 0; k <= i; k++ {
				w -= ctx.a[i+1][k] * ctx.a[k][j]
			}
			ctx.a[i+1][j] = w
		}
	}

	// Forward substitution: L*y = b.
	ctx.y[0] = ctx.b[0]
	for i := 1; i <= n; i++ {
		w := ctx.b[i]
		for j := 0; j < i; j++ {
			w -= ctx.a[i][j] * ctx.y[j]
		}
		ctx.y[i] = w
	}

	// Backward substitution: U*x = y.
	ctx.x[n] = ctx.y[n] / ctx.a[n][n]
	for i := n - 1; i >= 0; i-- {
		w := ctx.y[i]
		for j := i + 1; j <= n; j++ {
			w -= ctx.a[i][j] * ctx.x[j]
		}
		ctx.x[i] = w / ctx.a[i][i]
	}

	return 0
}

// LUDBenchmark builds the fixed 6×6 test matrix, solves it, and verifies
// the solution vector element-for-element against the reference.
func LUDBenchmark() bool {
	var ctx ludContext
	chkerr := 0

	for sf := 0; sf < ludScaleFactor; sf++ {
		n := ludOrder
		for i := 0; i <= n; i++ {
			var w int64
			for j := 0; j <= n; j++ {
				ctx.a[i][j] = int64(i+1) + int64(j+1)
				if i == j {
					ctx.a[i][j] *= 2
				}
				w += ctx.a[i][j]
			}
			ctx.b[i] = w
		}
		chkerr = ctx.decompose(n)
	}

	return ctx.x == ludReference && chkerr == 0
}
