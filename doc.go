// Package equity computes the economic and tax consequences of equity
// compensation (stock options and restricted stock units) over time.
//
// The core functionalities include:
//   - Vesting: given a grant and an as-of date, how many shares are vested,
//     what fraction of the award that represents, and when the next tranche
//     lands.
//   - Taxation: given exercise and exit prices, the full tax breakdown of a
//     transaction under ISO, NSO, and RSU treatment: ordinary tax, capital
//     gains, alternative minimum tax, Medicare and net-investment-income
//     surtaxes, and flat state tax with multi-state allocation.
//   - Decision support: normalized scores for financial capacity, company
//     outlook, tax efficiency, and timing, blended into a tiered exercise
//     recommendation.
//   - Scenario analysis: a fixed set of exercise strategies evaluated
//     against IPO, acquisition, and secondary-sale exits, ranked by net
//     proceeds.
//
// Every engine is a pure, stateless function over immutable inputs: the
// same arguments always produce the same result, nothing is cached, and the
// only shared data is the read-only tax tables. The bracket tables are
// simplified approximations of the published figures, versioned by year and
// embedded in the binary; they are intended for planning, not filing.
//
// This package serves as the foundational logic for the `eqc` command-line
// tool; persistence and presentation live with the caller.
package equity
