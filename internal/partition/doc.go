// Package partition decides, per asset, whether it stays in the shared store
// or moves into the private store of one code-split package.
//
// Partition pipeline:
//  1. Walk packages in declaration order.
//  2. For each member page, walk its scripts then its styles.
//  3. An asset moves into the package when every page that references it is
//     a member of that package. The first package to claim an asset keeps it.
//  4. Assets with no recorded owners, or with any owner outside the package,
//     stay shared.
//
// The resulting Plan is read-only and is the single source of truth for
// output locations and for the relative paths pages use to reach assets.
package partition
