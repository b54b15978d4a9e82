package attest

import (
	"go.uber.org/zap"

	"github.com/nspcc-dev/vimp/pkg/certcache"
	"github.com/nspcc-dev/vimp/pkg/interp"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
	"github.com/nspcc-dev/vimp/pkg/vimpkeys"
	"github.com/nspcc-dev/vimp/pkg/vimpmetrics"
)

// Runner executes verified programs against argument buffers, carrying the
// ambient dependencies (recursion limit, verifier-certificate cache,
// structured logging) that a bare Run function would otherwise have to take
// as a long parameter list on every call.
type Runner struct {
	MaxDepth int
	Cache    *certcache.Cache
	Log      *zap.Logger
}

// NewRunner returns a Runner with the given recursion limit and an optional
// cache/logger (either may be nil; a nil logger runs silently, a nil cache
// disables signature-replay caching).
func NewRunner(maxDepth int, cache *certcache.Cache, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{MaxDepth: maxDepth, Cache: cache, Log: log}
}

// Run executes one request: it verifies the .vimpc trailer's signature over
// H_code, parses and evaluates the .param buffer's argument list, runs the
// program's root and its "entry" function, then signs a report chaining
// H_args, H_code and H_out. It never re-runs the type checker: the
// verifier's signature over H_code is the proof that the program it covers
// already passed, per spec.md §4.6 step 5.
func (r *Runner) Run(verifiedBytecode, paramBuffer []byte) (res Report, err error) {
	start := observeStart()
	defer func() {
		outcome := vimpmetrics.OutcomeSuccess
		if err != nil {
			outcome = vimpmetrics.OutcomeError
		}
		vimpmetrics.ObserveRequest(vimpmetrics.StageRun, outcome, sinceSeconds(start))
	}()

	prog, codeBytes, pubBytes, sigBytes, err := splitVimpc(verifiedBytecode)
	if err != nil {
		return Report{}, err
	}
	hCode := hash256(codeBytes)

	if err := r.verifyTrailer(hCode, pubBytes, sigBytes); err != nil {
		r.Log.Error("verifier signature check failed", zap.Error(err))
		return Report{}, err
	}

	argVals, argBytes, err := decodeArgs(paramBuffer)
	if err != nil {
		return Report{}, err
	}
	hArgs := hash256(argBytes)

	ip := interp.New(prog, r.MaxDepth)
	if err := ip.RunRoot(); err != nil {
		return Report{}, err
	}
	callRes, err := ip.CallEntry(argVals)
	if err != nil {
		return Report{}, err
	}

	outBytes := encodeResult(callRes.HasValue, callRes.Value)
	hOut := hash256(outBytes)
	hReport := hash256(hArgs[:], hCode[:], hOut[:])

	sessionKey, err := vimpkeys.GenerateKey()
	if err != nil {
		return Report{}, err
	}
	sig, err := sessionKey.SignHash(hReport[:])
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		HArgs:    hArgs,
		HCode:    hCode,
		HOut:     hOut,
		HasValue: callRes.HasValue,
		Value:    callRes.Value,
	}
	copy(rep.SessionPub[:], sessionKey.PublicKey().Bytes())
	copy(rep.Signature[:], sig)

	r.Log.Info("run complete",
		zap.String("h_code", hexString(hCode[:])),
		zap.String("h_args", hexString(hArgs[:])),
		zap.String("h_out", hexString(hOut[:])),
		zap.String("h_report", hexString(hReport[:])),
		zap.String("outcome", vimpmetrics.OutcomeSuccess),
	)

	return rep, nil
}

// verifyTrailer checks sigBytes over hCode against pubBytes, trusting the
// cache when this exact (H_code, pubkey, signature) triple was already
// proven valid by an earlier call (the common case of one verified program
// replayed against many argument lists, per SPEC_FULL.md §4.6).
func (r *Runner) verifyTrailer(hCode [32]byte, pubBytes, sigBytes []byte) error {
	if r.Cache != nil {
		if e, ok := r.Cache.Get(hCode); ok && bytesEqual(e.VerifierPub, pubBytes) && bytesEqual(e.Sig, sigBytes) {
			return nil
		}
	}

	pub, err := vimpkeys.PublicKeyFromBytes(pubBytes)
	if err != nil {
		return err
	}
	if !pub.Verify(sigBytes, hCode[:]) {
		return vimperr.ErrVerifierSignatureInvalid
	}

	if r.Cache != nil {
		r.Cache.Put(hCode, certcache.Entry{VerifierPub: pubBytes, Sig: sigBytes})
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
